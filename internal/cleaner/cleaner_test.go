package cleaner

import (
	"strings"
	"testing"
)

func TestClean_LineBreakVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf", "a\r\nb", "a\nb"},
		{"cr", "a\rb", "a\nb"},
		{"escaped lf", `a\nb`, "a\nb"},
		{"escaped crlf", `a\r\nb`, "a\nb"},
		{"br tag", "a<br>b<BR/>c<br />d", "a\nb\nc\nd"},
		{"escaped br tag", "a&lt;br&gt;b", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClean_Entities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"named", "給与&amp;賞与", "給与&賞与"},
		{"numeric", "&#12354;&#x3044;", "あい"},
		{"nbsp", "勤務地&nbsp;東京", "勤務地 東京"},
		{"double escaped", "&amp;lt;b&amp;gt;", "<b>"},
		{"malformed passes through", "&#xZZ; &bogus; AT&T", "&#xZZ; &bogus; AT&T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClean_Whitespace(t *testing.T) {
	input := "  【勤務地】\u3000\u3000東京都\t 千代田区   \n\n\n\n仕事内容：開発 \u00a0\n"
	want := "【勤務地】 東京都 千代田区\n\n仕事内容：開発"
	if got := Clean(input); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_KeepsLeadingIndentOfInnerLines(t *testing.T) {
	got := Clean("見出し\n ・箇条書き")
	if got != "見出し\n ・箇条書き" {
		t.Errorf("expected inner indentation kept, got %q", got)
	}
}

func TestClean_EmptyAndWhitespaceOnly(t *testing.T) {
	for _, in := range []string{"", "   ", "\u3000\n\r\n\t", `\n\n`} {
		if got := Clean(in); got != "" {
			t.Errorf("Clean(%q): expected empty, got %q", in, got)
		}
	}
}

func TestClean_FoldWidth(t *testing.T) {
	c := New(Options{FoldWidth: true})
	got := c.Clean("勤務地：ＡＢＣビル１Ｆ ｶﾀｶﾅ")
	want := "勤務地:ABCビル1F カタカナ"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Default cleaner leaves widths alone.
	if got := Clean("ＡＢＣ"); got != "ＡＢＣ" {
		t.Errorf("expected default cleaner not to fold widths, got %q", got)
	}
	if !c.Options().FoldWidth {
		t.Error("expected Options to report FoldWidth")
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"【キャッチコピー】\r\nAIで未来をつくる仲間を募集！\r\n\r\n\r\n【勤務地】&nbsp;東京都",
		`勤務地：東京\n\n\n\n仕事内容：&amp;amp;lt;開発&amp;amp;gt;`,
		"a&amp;#12354;b",
		"\u3000\u3000全角スペース\u3000\u3000",
		"&lt;br&gt;&lt;br /&gt;改行",
		"  \t tabs \t and  spaces  ",
		"\\\\n backslashes \\r",
		"ｶﾞｷﾞｸﾞ &#65;&#x42;",
	}
	cleaners := []*Cleaner{New(Options{}), New(Options{FoldWidth: true})}
	for _, c := range cleaners {
		for _, in := range inputs {
			once := c.Clean(in)
			twice := c.Clean(once)
			if once != twice {
				t.Errorf("not idempotent (fold=%v) for %q:\nonce:  %q\ntwice: %q", c.opts.FoldWidth, in, once, twice)
			}
		}
	}
}

func TestClean_PreservesNonWhitespaceOrder(t *testing.T) {
	in := "【仕事内容】\nA\nB\n【勤務地】\nC"
	got := Clean(in)
	strip := func(s string) string { return strings.Join(strings.Fields(s), "") }
	if strip(got) != strip(in) {
		t.Errorf("expected non-whitespace content unchanged, got %q", got)
	}
}
