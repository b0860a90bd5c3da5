// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/phrasef"
	"github.com/poiesic/phrasef/batch"
	"github.com/poiesic/phrasef/charclass"
	"github.com/poiesic/phrasef/core"
	"github.com/poiesic/phrasef/finder"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stdin).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB archive directory",
		Required: true,
	}
}

func newApp(stdout io.Writer, stdin io.Reader) *cli.App {
	return &cli.App{
		Name:   "phrasef",
		Usage:  "Find independent phrases in Japanese and mixed-script text",
		Writer: stdout,
		Reader: stdin,
		// Phrases may legitimately contain commas
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "find",
				Usage:  "Scan a text for independent occurrences of phrases",
				Action: findCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "phrase",
						Aliases:  []string{"p"},
						Usage:    "Phrase to search for (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "text",
						Aliases: []string{"t"},
						Usage:   "Text to scan",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "File to scan (stdin is read when neither --text nor --file is given)",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "String inserted before each hit in the hint",
						Value: core.DefaultHintPrefix,
					},
					&cli.StringFlag{
						Name:  "suffix",
						Usage: "String inserted after each hit in the hint",
						Value: core.DefaultHintSuffix,
					},
					&cli.BoolFlag{
						Name:  "strict-boundary",
						Usage: "Check the left neighbor of occurrences starting at index 1",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the result set as JSON",
					},
				},
			},
			{
				Name:      "batch",
				Usage:     "Scan files concurrently and store a record per file",
				ArgsUsage: "FILE...",
				Action:    batchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:     "phrase",
						Aliases:  []string{"p"},
						Usage:    "Phrase to search for (repeatable)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files scanned concurrently (0 selects half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N files",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for storing the batch",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 100 * time.Millisecond,
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Show stored scan records",
				Action: showCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{
						Name:  "id",
						Usage: "Print the record with this ID",
					},
					&cli.StringFlag{
						Name:  "phrase",
						Usage: "List IDs of records with an independent hit for this phrase",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of records listed when neither --id nor --phrase is given",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print records as JSON",
					},
				},
			},
			{
				Name:      "classify",
				Usage:     "Print the analysis mode and character classes of each argument",
				ArgsUsage: "STRING...",
				Action:    classifyCommand,
			},
		},
	}
}

func findCommand(c *cli.Context) error {
	text, err := readInput(c)
	if err != nil {
		return err
	}

	f, err := finder.New(
		finder.WithHintBrace(c.String("prefix"), c.String("suffix")),
		finder.WithStrictLeadingBoundary(c.Bool("strict-boundary")),
	)
	if err != nil {
		return err
	}

	rs, err := f.ScanPhrases(text, c.StringSlice("phrase"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, rs)
	}

	fmt.Fprintln(out, rs.Hint)
	for phrase, r := range rs.All() {
		fmt.Fprintf(out, "%s\t%s\t%d%s\n", phrase, r.Mode, r.NumOfHits, formatPositions(r.Positions))
	}
	fmt.Fprintf(out, "total\t%d\n", rs.NumOfHits)
	return nil
}

// readInput returns the text selected by --text, --file or stdin, in that order.
func readInput(c *cli.Context) (string, error) {
	if c.IsSet("text") {
		return c.String("text"), nil
	}
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func formatPositions(positions []core.Position) string {
	var b strings.Builder
	for i, p := range positions {
		if i == 0 {
			b.WriteByte('\t')
		} else {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d-%d", p.Start, p.End)
	}
	return b.String()
}

func batchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one file is required")
	}

	docs := make([]core.Document, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, core.Document{Name: filepath.Clean(path), Text: string(data)})
	}

	archive, err := phrasef.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	opts := []batch.Option{
		batch.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
		batch.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, batch.WithPoolSize(workers))
	}

	scanner, err := archive.NewBatchScanner(opts...)
	if err != nil {
		return err
	}
	defer scanner.Release()

	slog.Info("starting batch scan", "files", len(docs), "workers", scanner.Config().PoolSize)
	records, err := scanner.Scan(c.Context, docs, c.StringSlice("phrase"))
	if err != nil {
		return err
	}

	hits := 0
	for _, record := range records {
		fmt.Fprintf(c.App.Writer, "%d\t%s\t%d\n", record.Id, record.DocumentName, record.NumOfHits)
		if record.IsHit {
			hits++
		}
	}
	slog.Info("batch scan complete", "files", len(records), "files_with_hits", hits)
	return nil
}

func showCommand(c *cli.Context) error {
	archive, err := phrasef.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer archive.Close()

	repo := archive.Repository()
	out := c.App.Writer

	switch {
	case c.IsSet("id"):
		record, err := repo.GetScanRecord(c.Context, core.ID(c.Uint64("id")))
		if err != nil {
			return err
		}
		if c.Bool("json") {
			return writeJSON(out, record)
		}
		printRecord(out, record)

	case c.IsSet("phrase"):
		ids, err := repo.GetScanRecordsByPhrase(c.Context, c.String("phrase"))
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}

	default:
		records, err := repo.ListScanRecords(c.Context, c.Int("limit"))
		if err != nil {
			return err
		}
		if c.Bool("json") {
			return writeJSON(out, records)
		}
		for _, record := range records {
			fmt.Fprintf(out, "%d\t%s\t%d\t%s\n", record.Id, record.DocumentName, record.NumOfHits,
				record.ScannedAt.Format(time.RFC3339))
		}
	}
	return nil
}

func printRecord(out io.Writer, record *core.ScanRecord) {
	fmt.Fprintf(out, "id:       %d\n", record.Id)
	fmt.Fprintf(out, "document: %s\n", record.DocumentName)
	fmt.Fprintf(out, "scanned:  %s\n", record.ScannedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "phrases:  %s\n", strings.Join(record.Phrases, ", "))
	fmt.Fprintf(out, "hits:     %d\n", record.NumOfHits)
	fmt.Fprintf(out, "hint:     %s\n", record.Hint)
	for _, r := range record.Results {
		fmt.Fprintf(out, "  %s\t%s\t%d%s\n", r.Phrase, r.Mode, r.NumOfHits, formatPositions(r.Positions))
	}
}

// classes lists the character classes s belongs to, most specific first.
func classes(s string) []string {
	checks := []struct {
		name string
		is   func(string) bool
	}{
		{"HalfwidthNumeric", charclass.IsHalfwidthNumeric},
		{"HalfwidthAlphabet", charclass.IsHalfwidthAlphabet},
		{"HalfwidthAlphaNumeric", charclass.IsHalfwidthAlphaNumeric},
		{"FullwidthHiragana", charclass.IsFullwidthHiragana},
		{"FullwidthKatakana", charclass.IsFullwidthKatakana},
		{"FullwidthNumeric", charclass.IsFullwidthNumeric},
		{"FullwidthKanji", charclass.IsFullwidthKanji},
		{"FullwidthOnly", charclass.IsFullwidthOnly},
	}
	var out []string
	for _, check := range checks {
		if check.is(s) {
			out = append(out, check.name)
		}
	}
	return out
}

func classifyCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("at least one string is required")
	}
	for _, s := range c.Args().Slice() {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", s, finder.DetectMode(s), strings.Join(classes(s), ","))
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
