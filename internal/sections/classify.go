package sections

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/jobpost/internal/vocab"
)

// Kind is the role of a line within a posting.
type Kind int

const (
	Content Kind = iota
	Header
	UnknownHeader
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "header"
	case UnknownHeader:
		return "unknown_header"
	default:
		return "content"
	}
}

// Classification is the result of classifying a single line.
type Classification struct {
	Kind    Kind
	Label   vocab.Label // set for Header and UnknownHeader
	Heading string      // the header as written, without inline content
	Inline  string      // text after the header on the same line
	Catch   bool        // bracket-wrapped content that is not a heading
}

const (
	// Lines longer than this are prose, never headers.
	maxHeaderRunes = 50
	// Headings outside the vocabulary are at most this long.
	maxUnknownRunes = 20
)

const (
	// Marker glyphs, plus the variation selectors that follow them in
	// emoji or text presentation (▶︎).
	decorations  = "◆◇■□●★☆▼▶▷\ufe0e\ufe0f"
	colons       = "：:"
	sentenceMark = "。！!？?、，,"
)

var closers = map[rune]rune{
	'【': '】',
	'[': ']',
	'［': '］',
	'〔': '〕',
	'《': '》',
	'＜': '＞',
	'〈': '〉',
}

// Classify decides whether line is a known header, a heading outside the
// vocabulary, or content. Checks run from the most to the least explicit
// header form and the first that applies wins.
func Classify(line string, v *vocab.Vocabulary) Classification {
	text := strings.TrimSpace(line)
	if text == "" {
		return Classification{Kind: Content}
	}
	body, decorated := trimDecoration(text)
	if utf8.RuneCountInString(text) > maxHeaderRunes {
		return classifyLong(text, body, v)
	}

	if core, rest, ok := unwrapBracket(body); ok {
		rest = trimLeadingColon(rest)
		if e, ok := v.Lookup(core); ok {
			return header(e.Label, text, rest)
		}
		if looksLikeHeading(core) {
			return unknown(text, rest)
		}
		return Classification{Kind: Content, Catch: true}
	}

	if decorated {
		if e, rest, ok := v.MatchPrefix(body); ok {
			return header(e.Label, text, rest)
		}
	}

	if head, rest, ok := cutColon(body); ok && !isNumeric(head) {
		if e, ok := v.Lookup(head); ok {
			return header(e.Label, text, rest)
		}
		if looksLikeHeading(head) && (rest == "" || decorated) {
			return unknown(text, rest)
		}
	}

	if e, ok := v.Lookup(body); ok {
		return header(e.Label, text, "")
	}
	if decorated && looksLikeHeading(body) {
		return unknown(text, "")
	}
	return Classification{Kind: Content}
}

// classifyLong handles lines past the header length limit. They are prose
// unless an exact vocabulary header opens them, as in "給与：<long details>".
func classifyLong(text, body string, v *vocab.Vocabulary) Classification {
	if core, rest, ok := unwrapBracket(body); ok {
		if e, ok := v.Lookup(core); ok {
			return header(e.Label, text, trimLeadingColon(rest))
		}
		return Classification{Kind: Content}
	}
	if head, rest, ok := cutColon(body); ok && !isNumeric(head) {
		if e, ok := v.Lookup(head); ok {
			return header(e.Label, text, rest)
		}
	}
	return Classification{Kind: Content}
}

func header(label vocab.Label, text, inline string) Classification {
	return Classification{
		Kind:    Header,
		Label:   label,
		Heading: headingOf(text, inline),
		Inline:  inline,
	}
}

func unknown(text, inline string) Classification {
	return Classification{
		Kind:    UnknownHeader,
		Label:   vocab.Unknown,
		Heading: headingOf(text, inline),
		Inline:  inline,
	}
}

func headingOf(text, inline string) string {
	if inline == "" {
		return text
	}
	return strings.TrimSpace(strings.TrimSuffix(text, inline))
}

// trimDecoration strips leading marker glyphs such as ■ or ◆.
func trimDecoration(s string) (string, bool) {
	trimmed := strings.TrimLeft(s, decorations)
	if trimmed == s {
		return s, false
	}
	return strings.TrimSpace(trimmed), true
}

// unwrapBracket splits "【core】rest" into its parts. s must open with a
// known bracket and close it before the end of the line.
func unwrapBracket(s string) (core, rest string, ok bool) {
	open, size := utf8.DecodeRuneInString(s)
	closer, known := closers[open]
	if !known {
		return "", "", false
	}
	end := strings.IndexRune(s[size:], closer)
	if end < 0 {
		return "", "", false
	}
	core = strings.TrimSpace(s[size : size+end])
	if core == "" {
		return "", "", false
	}
	rest = strings.TrimSpace(s[size+end+utf8.RuneLen(closer):])
	return core, rest, true
}

// cutColon splits "head：rest" at the first colon.
func cutColon(s string) (head, rest string, ok bool) {
	i := strings.IndexAny(s, colons)
	if i <= 0 {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	head = strings.TrimSpace(s[:i])
	if head == "" {
		return "", "", false
	}
	return head, strings.TrimSpace(s[i+size:]), true
}

func trimLeadingColon(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, colons))
}

// looksLikeHeading reports whether s is short label-like text rather than
// a sentence.
func looksLikeHeading(s string) bool {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > maxUnknownRunes || isNumeric(s) {
		return false
	}
	return !strings.ContainsAny(s, sentenceMark)
}

// isNumeric matches time and number fragments such as "10" in "10:00".
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != '．' {
			return false
		}
	}
	return true
}

// StripDecoration returns line without marker glyphs, bracket wrapping and a
// trailing colon, for display.
func StripDecoration(line string) string {
	body, _ := trimDecoration(strings.TrimSpace(line))
	if core, rest, ok := unwrapBracket(body); ok {
		if rest == "" {
			return core
		}
		return core + " " + trimLeadingColon(rest)
	}
	return strings.TrimSpace(strings.TrimRight(body, colons))
}
