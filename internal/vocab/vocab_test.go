package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_LookupCanonicalAndSynonyms(t *testing.T) {
	v := Default()
	tests := []struct {
		text string
		want Label
	}{
		{"勤務地", "勤務地"},
		{"勤務場所", "勤務地"},
		{"勤務地所在地", "勤務地所在地"},
		{"勤務時間詳細", "勤務時間詳細"},
		{"勤務時間", "勤務時間"},
		{"給与", "給与詳細"},
		{"福利厚生", "待遇・福利厚生"},
		{"待遇・福利厚生", "待遇・福利厚生"},
		{"選考フロー", "選考プロセス"},
		{"募集職種", "職種"},
		{"キャッチコピー", "キャッチコピー"},
	}
	for _, tt := range tests {
		e, ok := v.Lookup(tt.text)
		if !ok {
			t.Errorf("Lookup(%q): expected a match", tt.text)
			continue
		}
		if e.Label != tt.want {
			t.Errorf("Lookup(%q): expected %q, got %q", tt.text, tt.want, e.Label)
		}
	}
}

func TestDefault_LookupNormalizesWidthAndSpacing(t *testing.T) {
	v := Default()
	for _, text := range []string{" 勤務地 ", "勤 務 地", "・勤務地・", "勤務地：", "勤務地:"} {
		e, ok := v.Lookup(text)
		if !ok || e.Label != "勤務地" {
			t.Errorf("Lookup(%q): expected 勤務地, got %q (ok=%v)", text, e.Label, ok)
		}
	}
	// Full-width slash folds to its narrow form.
	if e, ok := v.Lookup("待遇／福利厚生"); !ok || e.Label != "待遇・福利厚生" {
		t.Errorf("expected full-width slash variant to match, got %q (ok=%v)", e.Label, ok)
	}
}

func TestDefault_LookupMisses(t *testing.T) {
	v := Default()
	for _, text := range []string{"", "   ", "社風", "勤務地所在", "10"} {
		if e, ok := v.Lookup(text); ok {
			t.Errorf("Lookup(%q): expected no match, got %q", text, e.Label)
		}
	}
}

func TestDefault_SpecificHeaderNeverResolvesToShorterPrefix(t *testing.T) {
	v := Default()
	pairs := map[string]Label{
		"勤務地所在地": "勤務地所在地",
		"勤務時間詳細": "勤務時間詳細",
		"本社所在地":  "本社所在地",
	}
	for text, want := range pairs {
		e, ok := v.Lookup(text)
		if !ok || e.Label != want {
			t.Errorf("Lookup(%q): expected %q, got %q", text, want, e.Label)
		}
	}
}

func TestMatchPrefix(t *testing.T) {
	v := Default()
	e, rest, ok := v.MatchPrefix("勤務時間 10:00〜19:00")
	if !ok {
		t.Fatal("expected prefix match")
	}
	if e.Label != "勤務時間" {
		t.Errorf("expected 勤務時間, got %q", e.Label)
	}
	if rest != "10:00〜19:00" {
		t.Errorf("expected rest %q, got %q", "10:00〜19:00", rest)
	}

	if _, _, ok := v.MatchPrefix("勤務時間"); ok {
		t.Error("expected bare literal without inline text not to prefix-match")
	}
	if _, _, ok := v.MatchPrefix("交通費全額支給"); ok {
		t.Error("expected literal glued to following text not to prefix-match")
	}
}

func TestSchemaLabels(t *testing.T) {
	labels := Default().SchemaLabels()
	if labels[len(labels)-1] != Unknown {
		t.Fatalf("expected Unknown as last schema label, got %q", labels[len(labels)-1])
	}
	want := []Label{
		"キャッチコピー", "本社所在地", "仕事内容", "求めている人材", "勤務時間詳細", "勤務時間",
		"勤務地所在地", "勤務地", "交通アクセス", "給与詳細", "試用期間", "待遇・福利厚生",
		"社会保険", "選考プロセス", Unknown,
	}
	if len(labels) != len(want) {
		t.Fatalf("expected %d labels, got %d: %v", len(want), len(labels), labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label[%d]: expected %q, got %q", i, want[i], labels[i])
		}
	}
}

func TestByField(t *testing.T) {
	v := Default()
	e, ok := v.ByField(FieldSalary)
	if !ok || e.Label != "給与詳細" {
		t.Errorf("expected salary field on 給与詳細, got %q (ok=%v)", e.Label, ok)
	}
	if _, ok := v.ByField(FieldNone); ok {
		t.Error("expected FieldNone to match nothing")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty label", []Entry{{Label: " "}}},
		{"reserved label", []Entry{{Label: Unknown}}},
		{"duplicate label", []Entry{{Label: "勤務地"}, {Label: "勤務地"}}},
		{"unknown field", []Entry{{Label: "勤務地", Field: "bonus"}}},
		{"field twice", []Entry{{Label: "給与", Field: FieldSalary}, {Label: "年収", Field: FieldSalary}}},
		{"empty literal", []Entry{{Label: "勤務地", Literals: []string{"・"}}}},
		{"shadowed literal", []Entry{{Label: "勤務地", Literals: []string{"勤務先"}}, {Label: "勤務先情報", Literals: []string{"勤務先"}}}},
		{"shadowed label", []Entry{{Label: "勤務地", Literals: []string{"勤務場所"}}, {Label: "勤務場所"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestNew_DuplicateLiteralWithinEntryIsIgnored(t *testing.T) {
	v, err := New([]Entry{{Label: "勤務地", Literals: []string{"勤務地", "勤務場所", "勤務場所"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e, ok := v.Lookup("勤務場所"); !ok || e.Label != "勤務地" {
		t.Errorf("expected 勤務場所 to resolve to 勤務地, got %q", e.Label)
	}
}

func TestParseAndMarshalYAML(t *testing.T) {
	doc := []byte(`
entries:
  - label: 勤務地
    literals: [勤務場所]
  - label: 給与詳細
    literals: [給与]
    field: salary
`)
	v, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e, ok := v.Lookup("給与"); !ok || e.Label != "給与詳細" || e.Field != FieldSalary {
		t.Errorf("expected 給与 -> 給与詳細/salary, got %+v (ok=%v)", e, ok)
	}

	out, err := Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("re-parse marshalled vocabulary: %v", err)
	}
	if len(again.Entries()) != 2 {
		t.Errorf("expected 2 entries after round trip, got %d", len(again.Entries()))
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte("entries: [")); err == nil {
		t.Error("expected decode error")
	}
	_, err := Parse([]byte("entries: []"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for empty vocabulary, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("entries:\n  - label: 社風\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.Lookup("社風"); !ok {
		t.Error("expected loaded vocabulary to know 社風")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	v := Default()
	entries := v.Entries()
	entries[0].Literals[0] = "changed"
	if v.Entries()[0].Literals[0] == "changed" {
		t.Error("expected Entries to return an independent copy")
	}
}
