// Package cleaner normalizes raw job-posting text before section splitting.
//
// Cleaning unifies line breaks (including escaped "\n" sequences and <br>
// tags), decodes HTML entities, turns full-width and non-breaking spaces
// into ASCII spaces, and collapses runs of blanks. It never reorders text
// and is idempotent: Clean(Clean(s)) == Clean(s).
package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/width"
)

// Options tune the cleaning pass.
type Options struct {
	// FoldWidth maps full-width ASCII to half-width and half-width katakana
	// to full-width.
	FoldWidth bool
}

// Cleaner applies a fixed cleaning pass. The zero value is ready to use.
type Cleaner struct {
	opts Options
}

// New returns a Cleaner with the given options.
func New(opts Options) *Cleaner {
	return &Cleaner{opts: opts}
}

// Options reports the options the cleaner was built with.
func (c *Cleaner) Options() Options {
	return c.opts
}

var std = &Cleaner{}

// Clean normalizes raw with the default options.
func Clean(raw string) string {
	return std.Clean(raw)
}

var (
	reBreakTag   = regexp.MustCompile(`(?i)<br\s*/?>`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)

	escapedBreaks = strings.NewReplacer(`\r\n`, "\n", `\n`, "\n", `\r`, "\n")
	lineBreaks    = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	spaces        = strings.NewReplacer("\u3000", " ", "\u00a0", " ", "\t", " ")
)

// Clean normalizes raw. The pass is repeated until it reaches a fixed point
// so doubly escaped input such as "&amp;lt;" settles in one call. A pass that
// changes the text either shortens it or applies a one-way substitution, so
// the loop terminates.
func (c *Cleaner) Clean(raw string) string {
	s := raw
	for {
		next := c.pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func (c *Cleaner) pass(s string) string {
	s = html.UnescapeString(s)
	s = reBreakTag.ReplaceAllString(s, "\n")
	s = escapedBreaks.Replace(s)
	s = lineBreaks.Replace(s)
	s = spaces.Replace(s)
	if c.opts.FoldWidth {
		s = width.Fold.String(s)
	}
	s = reMultiSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	s = strings.Join(lines, "\n")

	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
