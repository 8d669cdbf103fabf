// Package sections splits cleaned job-posting text into labelled sections.
//
// Each line is classified against a header vocabulary. Content lines are
// grouped under the most recent header; repeated headers accumulate into a
// single section in order of first appearance; headings outside the
// vocabulary share one Unknown section. Split is a pure function of the
// text and the vocabulary.
package sections

import (
	"strings"

	"github.com/dgallion1/jobpost/internal/vocab"
)

// Line is one retained line of a section.
type Line struct {
	Text string
	// Heading marks an unknown heading kept inside the Unknown section so
	// that its wording is not lost.
	Heading bool
}

// Section is a label with the lines that follow its headers.
type Section struct {
	Label    vocab.Label
	Headings []string // header lines as written, one per occurrence
	Lines    []Line
}

// Text joins every line of the section with newlines.
func (s Section) Text() string {
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// Content returns the section's content lines, without unknown headings
// or paragraph breaks.
func (s Section) Content() []string {
	var out []string
	for _, l := range s.Lines {
		if !l.Heading && l.Text != "" {
			out = append(out, l.Text)
		}
	}
	return out
}

// FirstLine returns the first content line, or "".
func (s Section) FirstLine() string {
	for _, l := range s.Lines {
		if !l.Heading && l.Text != "" {
			return l.Text
		}
	}
	return ""
}

// Result is a split posting.
type Result struct {
	// Leading holds content that appeared before the first header. It is
	// not part of any section.
	Leading []string
	// Sections are ordered by the first appearance of their label.
	Sections []Section
	// NoHeaders is set when no header of any kind was found; the whole
	// text, paragraph breaks included, is then placed in a single Unknown
	// section.
	NoHeaders bool
}

// Section returns the section with the given label.
func (r Result) Section(label vocab.Label) (Section, bool) {
	for _, s := range r.Sections {
		if s.Label == label {
			return s, true
		}
	}
	return Section{}, false
}

// HeaderCount is the number of header lines found, repeats included.
func (r Result) HeaderCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Headings)
	}
	return n
}

// UnknownHeadings lists the headings that were not in the vocabulary.
func (r Result) UnknownHeadings() []string {
	s, ok := r.Section(vocab.Unknown)
	if !ok {
		return nil
	}
	return s.Headings
}

// Split partitions cleaned text into sections using v. A nil v means the
// default vocabulary. Empty lines are dropped. Split never fails: text
// without any header ends up in a single Unknown section.
func Split(cleaned string, v *vocab.Vocabulary) Result {
	if v == nil {
		v = vocab.Default()
	}

	var (
		res     Result
		leading []string
		catches []bool
		current = -1
		index   = make(map[vocab.Label]int)
	)

	lines, classes := classifyLines(cleaned, v)
	for n, line := range lines {
		c := classes[n]
		if c.Kind == Content {
			if current < 0 {
				leading = append(leading, line)
				catches = append(catches, c.Catch)
				continue
			}
			res.Sections[current].Lines = append(res.Sections[current].Lines, Line{Text: line})
			continue
		}

		i, ok := index[c.Label]
		if !ok {
			res.Sections = append(res.Sections, Section{Label: c.Label})
			i = len(res.Sections) - 1
			index[c.Label] = i
		}
		sec := &res.Sections[i]
		sec.Headings = append(sec.Headings, c.Heading)
		if c.Kind == UnknownHeader {
			sec.Lines = append(sec.Lines, Line{Text: c.Heading, Heading: true})
		}
		if c.Inline != "" {
			sec.Lines = append(sec.Lines, Line{Text: c.Inline})
		}
		current = i
	}

	if len(res.Sections) == 0 {
		res.NoHeaders = true
		if text := strings.TrimSpace(cleaned); text != "" {
			res.Sections = []Section{{Label: vocab.Unknown, Lines: toLines(strings.Split(text, "\n"))}}
		}
		return res
	}

	res.Leading = leading
	if e, ok := v.ByField(vocab.FieldCatchCopy); ok {
		res = promoteCatchLines(res, catches, e.Label)
	}
	return res
}

// classifyLines returns the non-empty trimmed lines of text with their
// classifications. A bracketed heading outside the vocabulary that opens the
// posting, ahead of every other header, and is directly followed by another
// header has no content of its own; it is a slogan and is reclassified as a
// catch line.
func classifyLines(text string, v *vocab.Vocabulary) ([]string, []Classification) {
	var (
		lines   []string
		classes []Classification
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		classes = append(classes, Classify(line, v))
	}

	for i := 0; i+1 < len(classes); i++ {
		c := classes[i]
		if c.Kind == Content {
			continue
		}
		if c.Kind == Header || c.Inline != "" || classes[i+1].Kind == Content || !isBracketed(lines[i]) {
			break
		}
		classes[i] = Classification{Kind: Content, Catch: true}
	}
	return lines, classes
}

func isBracketed(line string) bool {
	body, _ := trimDecoration(line)
	_, _, ok := unwrapBracket(body)
	return ok
}

// promoteCatchLines moves bracket-wrapped slogans that precede the first
// header into the catch-copy section, ahead of anything already there.
func promoteCatchLines(res Result, catches []bool, label vocab.Label) Result {
	var promoted, rest []string
	for i, line := range res.Leading {
		if catches[i] {
			promoted = append(promoted, line)
		} else {
			rest = append(rest, line)
		}
	}
	if len(promoted) == 0 {
		return res
	}
	res.Leading = rest

	lines := toLines(promoted)
	for i := range res.Sections {
		if res.Sections[i].Label == label {
			res.Sections[i].Lines = append(lines, res.Sections[i].Lines...)
			return res
		}
	}
	res.Sections = append([]Section{{Label: label, Lines: lines}}, res.Sections...)
	return res
}

func toLines(texts []string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Line{Text: t}
	}
	return out
}
