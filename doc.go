// Package phrasef finds independent occurrences of phrases in Japanese and
// mixed-script text.
//
// An occurrence is independent when the characters around it do not
// continue it: "DENT" is found in "記事はDENTです" but not in "PRESIDENT".
// Which neighbors count as a continuation depends on the character class of
// the phrase, see package finder.
//
// The Archive type ties a finder.Finder to a badger-backed store of scan
// records and hands out batch scanners that persist into it.
package phrasef
