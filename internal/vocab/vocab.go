package vocab

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Label is the canonical name of a posting section.
type Label string

// Unknown is the reserved label that collects headings which look like
// headers but are not part of the vocabulary.
const Unknown Label = "不明な見出し"

// Field marks an entry whose content also feeds a top-level record field.
type Field string

const (
	FieldNone      Field = ""
	FieldJobTitle  Field = "job_title"
	FieldCompany   Field = "company"
	FieldSalary    Field = "salary"
	FieldCatchCopy Field = "catch_copy"
)

// ErrInvalid is wrapped by every vocabulary validation error.
var ErrInvalid = errors.New("invalid vocabulary")

// Entry associates a label with the literal header texts that select it.
// The label itself is always an accepted literal.
type Entry struct {
	Label    Label    `json:"label" yaml:"label"`
	Literals []string `json:"literals,omitempty" yaml:"literals,omitempty"`
	Field    Field    `json:"field,omitempty" yaml:"field,omitempty"`
}

// Vocabulary is an ordered, read-only header table. When two entries could
// claim the same text the earlier entry wins.
type Vocabulary struct {
	entries []Entry
	keys    [][]string
}

// New validates entries and builds a vocabulary that preserves their order.
func New(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		entries: make([]Entry, 0, len(entries)),
		keys:    make([][]string, 0, len(entries)),
	}
	labels := make(map[Label]bool, len(entries))
	fields := make(map[Field]Label)
	owner := make(map[string]Label)

	for i, e := range entries {
		label := Label(strings.TrimSpace(string(e.Label)))
		if label == "" {
			return nil, fmt.Errorf("%w: entry %d has no label", ErrInvalid, i)
		}
		if label == Unknown {
			return nil, fmt.Errorf("%w: label %q is reserved", ErrInvalid, Unknown)
		}
		if labels[label] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalid, label)
		}
		labels[label] = true

		switch e.Field {
		case FieldNone:
		case FieldJobTitle, FieldCompany, FieldSalary, FieldCatchCopy:
			if prev, ok := fields[e.Field]; ok {
				return nil, fmt.Errorf("%w: field %s assigned to both %q and %q", ErrInvalid, e.Field, prev, label)
			}
			fields[e.Field] = label
		default:
			return nil, fmt.Errorf("%w: unknown field %q on %q", ErrInvalid, e.Field, label)
		}

		var keys []string
		seen := make(map[string]bool)
		for _, lit := range append([]string{string(label)}, e.Literals...) {
			k := Key(lit)
			if k == "" {
				return nil, fmt.Errorf("%w: empty literal under %q", ErrInvalid, label)
			}
			if prev, ok := owner[k]; ok && prev != label {
				return nil, fmt.Errorf("%w: literal %q under %q is shadowed by %q", ErrInvalid, lit, label, prev)
			}
			if seen[k] {
				continue
			}
			seen[k] = true
			owner[k] = label
			keys = append(keys, k)
		}

		v.entries = append(v.entries, Entry{
			Label:    label,
			Literals: slices.Clone(e.Literals),
			Field:    e.Field,
		})
		v.keys = append(v.keys, keys)
	}
	return v, nil
}

// Lookup returns the first entry with a literal equal to text after key
// normalization.
func (v *Vocabulary) Lookup(text string) (Entry, bool) {
	k := Key(text)
	if k == "" {
		return Entry{}, false
	}
	for i, keys := range v.keys {
		if slices.Contains(keys, k) {
			return v.entries[i], true
		}
	}
	return Entry{}, false
}

// MatchPrefix reports whether text starts with a known literal followed by
// whitespace, returning the entry and the remaining inline text.
func (v *Vocabulary) MatchPrefix(text string) (Entry, string, bool) {
	for i, e := range v.entries {
		for _, lit := range literalsByLength(e) {
			rest, ok := strings.CutPrefix(text, lit)
			if !ok || rest == "" {
				continue
			}
			r, _ := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				continue
			}
			return v.entries[i], strings.TrimSpace(rest), true
		}
	}
	return Entry{}, "", false
}

// Entry returns the entry for label.
func (v *Vocabulary) Entry(label Label) (Entry, bool) {
	for _, e := range v.entries {
		if e.Label == label {
			return e, true
		}
	}
	return Entry{}, false
}

// ByField returns the entry that feeds field f.
func (v *Vocabulary) ByField(f Field) (Entry, bool) {
	if f == FieldNone {
		return Entry{}, false
	}
	for _, e := range v.entries {
		if e.Field == f {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the entries in priority order.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	for i, e := range v.entries {
		e.Literals = slices.Clone(e.Literals)
		out[i] = e
	}
	return out
}

// SchemaLabels lists the section keys every record carries, in vocabulary
// order, ending with Unknown. Entries that only feed the job title or the
// company name are left out.
func (v *Vocabulary) SchemaLabels() []Label {
	out := make([]Label, 0, len(v.entries)+1)
	for _, e := range v.entries {
		if e.Field == FieldJobTitle || e.Field == FieldCompany {
			continue
		}
		out = append(out, e.Label)
	}
	return append(out, Unknown)
}

// Key normalizes header text for comparison: width variants are folded,
// whitespace is removed and decorative punctuation is trimmed at the edges.
func Key(s string) string {
	s = width.Fold.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimFunc(b.String(), isEdgePunct)
}

func isEdgePunct(r rune) bool {
	return strings.ContainsRune("-‐−―・:", r)
}

// literalsByLength orders an entry's literals longest first so that a
// specific header is never reported as a shorter one it starts with.
func literalsByLength(e Entry) []string {
	lits := append([]string{string(e.Label)}, e.Literals...)
	slices.SortStableFunc(lits, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})
	return lits
}

// Default returns the built-in Japanese recruitment vocabulary.
var Default = sync.OnceValue(func() *Vocabulary {
	v, err := New(defaultEntries)
	if err != nil {
		panic(fmt.Sprintf("vocab: default vocabulary: %v", err))
	}
	return v
})

var defaultEntries = []Entry{
	{Label: "キャッチコピー", Literals: []string{"キャッチフレーズ", "キャッチ"}, Field: FieldCatchCopy},
	{Label: "職種", Literals: []string{"募集職種", "求人タイトル", "ポジション", "タイトル"}, Field: FieldJobTitle},
	{Label: "会社名", Literals: []string{"企業名", "運営会社", "社名"}, Field: FieldCompany},
	{Label: "本社所在地", Literals: []string{"会社所在地", "本社"}},
	{Label: "仕事内容", Literals: []string{"業務内容", "職務内容", "仕事の内容", "業務詳細"}},
	{Label: "求めている人材", Literals: []string{"求める人材", "求める人物像", "応募資格", "応募条件", "必須条件", "対象となる方"}},
	{Label: "勤務時間詳細", Literals: []string{"勤務時間の詳細"}},
	{Label: "勤務時間", Literals: []string{"勤務時間帯", "就業時間"}},
	{Label: "勤務地所在地", Literals: []string{"勤務先所在地", "勤務地住所"}},
	{Label: "勤務地", Literals: []string{"勤務場所", "就業場所", "勤務先"}},
	{Label: "交通アクセス", Literals: []string{"最寄り駅", "アクセス", "交通"}},
	{Label: "給与詳細", Literals: []string{"想定年収", "給与", "給料", "報酬", "賃金", "年収", "月給", "時給"}, Field: FieldSalary},
	{Label: "試用期間", Literals: []string{"試用・研修期間", "研修期間"}},
	{Label: "待遇・福利厚生", Literals: []string{"福利厚生・待遇", "待遇/福利厚生", "福利厚生", "待遇"}},
	{Label: "社会保険", Literals: []string{"各種保険", "保険"}},
	{Label: "選考プロセス", Literals: []string{"選考フロー", "選考方法", "選考の流れ"}},
}
