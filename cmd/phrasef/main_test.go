package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, strings.NewReader(stdin))
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"phrasef"}, args...))
	return stdout.String(), err
}

func TestFindCommand(t *testing.T) {
	t.Run("text flag", func(t *testing.T) {
		out, err := run(t, "", "find", "-p", "DENT", "-t", "記事はDENTです。PRESIDENT")
		require.NoError(t, err)
		assert.Equal(t, "記事は[DENT]です。PRESIDENT\nDENT\tHalfwidthAlphabet\t1\t3-7\ntotal\t1\n", out)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, "300円と3000円\n", "find", "-p", "300")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "[300]円と3000円\n"))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		require.NoError(t, os.WriteFile(path, []byte("日本の日本人"), 0644))

		out, err := run(t, "", "find", "-p", "日本", "-f", path)
		require.NoError(t, err)
		assert.Contains(t, out, "日本\tFullwidthKanji\t1\t0-2\n")
	})

	t.Run("custom brace", func(t *testing.T) {
		out, err := run(t, "", "find", "-p", "DENT", "--prefix", "【", "--suffix", "】", "-t", "記事はDENTです。")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "記事は【DENT】です。\n"))
	})

	t.Run("phrase containing comma", func(t *testing.T) {
		out, err := run(t, "", "find", "-p", "1,000", "-t", "1,000")
		require.NoError(t, err)
		assert.Equal(t, "[1,000]\n1,000\tUnknown\t1\t0-5\ntotal\t1\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "", "find", "-p", "DENT", "-p", "記事", "--json", "-t", "記事はDENTです。")
		require.NoError(t, err)

		var decoded struct {
			IsHit     bool   `json:"isHit"`
			NumOfHits int    `json:"numOfHits"`
			Hint      string `json:"hint"`
			Results   []struct {
				Phrase string `json:"phrase"`
				Mode   string `json:"mode"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.True(t, decoded.IsHit)
		assert.Equal(t, 2, decoded.NumOfHits)
		assert.Equal(t, "[記事]は[DENT]です。", decoded.Hint)
		require.Len(t, decoded.Results, 2)
		assert.Equal(t, "HalfwidthAlphabet", decoded.Results[0].Mode)
		assert.Equal(t, "FullwidthKanji", decoded.Results[1].Mode)
	})

	t.Run("phrase is required", func(t *testing.T) {
		_, err := run(t, "", "find", "-t", "DENT")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "phrase")
	})

	t.Run("empty phrase is rejected", func(t *testing.T) {
		_, err := run(t, "", "find", "-p", "", "-t", "DENT")
		require.Error(t, err)
	})
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "", "classify", "DENT", "280", "スキー", "日本")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "DENT\tHalfwidthAlphabet\tHalfwidthAlphabet,HalfwidthAlphaNumeric", lines[0])
	assert.Equal(t, "280\tHalfwidthNumeric\tHalfwidthNumeric,HalfwidthAlphaNumeric", lines[1])
	assert.Equal(t, "スキー\tFullwidthKatakana\tFullwidthKatakana,FullwidthOnly", lines[2])
	assert.Equal(t, "日本\tFullwidthKanji\tFullwidthKanji,FullwidthOnly", lines[3])

	_, err = run(t, "", "classify")
	assert.Error(t, err)
}

func TestBatchAndShowCommands(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "archive")
	hit := filepath.Join(dir, "hit.txt")
	miss := filepath.Join(dir, "miss.txt")
	require.NoError(t, os.WriteFile(hit, []byte("記事はDENTです。"), 0644))
	require.NoError(t, os.WriteFile(miss, []byte("PRESIDENT"), 0644))

	out, err := run(t, "", "batch", "--db", db, "-p", "DENT", "--workers", "2", hit, miss)
	require.NoError(t, err)
	assert.Equal(t, "1\t"+hit+"\t1\n2\t"+miss+"\t0\n", out)

	out, err = run(t, "", "show", "--db", db, "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "document: "+hit)
	assert.Contains(t, out, "hint:     記事は[DENT]です。")

	out, err = run(t, "", "show", "--db", db, "--phrase", "DENT")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "", "show", "--db", db)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = run(t, "", "show", "--db", db, "--id", "99")
	assert.Error(t, err)
}

func TestBatchCommandFlags(t *testing.T) {
	t.Run("db is required", func(t *testing.T) {
		_, err := run(t, "", "batch", "-p", "DENT", "a.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("files are required", func(t *testing.T) {
		_, err := run(t, "", "batch", "--db", t.TempDir(), "-p", "DENT")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})

	t.Run("retry defaults", func(t *testing.T) {
		app := newApp(&bytes.Buffer{}, strings.NewReader(""))
		var cmd *cli.Command
		for _, c := range app.Commands {
			if c.Name == "batch" {
				cmd = c
			}
		}
		require.NotNil(t, cmd)
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "max-retries" {
				assert.Equal(t, 3, f.Value)
			}
		}
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, tc := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		_, err := run(t, "", "--log-level", "invalid", "classify", "DENT")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		out, err := run(t, "", "-l", "debug", "classify", "DENT")
		require.NoError(t, err)
		assert.Contains(t, out, "DENT")
	})
}
