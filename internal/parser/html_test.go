package parser

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>求人詳細 | サンプル</title>
  <style>p { color: red }</style>
  <script>var tracking = "勤務地：偽物";</script>
</head>
<body>
  <header>サイトヘッダー</header>
  <nav><a href="/">トップ</a></nav>
  <h1>バックエンドエンジニア</h1>
  <p>株式会社サンプル</p>
  <h2>仕事内容</h2>
  <p>API開発<br>設計レビュー</p>
  <dl>
    <dt>勤務地</dt><dd>東京都千代田区</dd>
    <dt>給与</dt><dd>年収500万円〜</dd>
  </dl>
  <table>
    <tr><th>勤務時間</th><td>10:00〜19:00</td></tr>
  </table>
  <div onclick="steal()">交通：<b>東京駅</b> 徒歩5分</div>
  <script>document.write("広告")</script>
  <footer>フッター</footer>
</body>
</html>`

func TestHTMLParser_Posting(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(samplePage), "job.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "バックエンドエンジニア" {
		t.Errorf("expected h1 as title, got %q", tree.Title)
	}

	got := tree.PostingText()
	want := strings.Join([]string{
		"バックエンドエンジニア",
		"株式会社サンプル",
		"【仕事内容】",
		"API開発\n設計レビュー",
		"【勤務地】",
		"東京都千代田区",
		"【給与】",
		"年収500万円〜",
		"【勤務時間】",
		"10:00〜19:00",
		"交通：東京駅 徒歩5分",
	}, "\n")
	if got != want {
		t.Errorf("expected posting text:\n%s\ngot:\n%s", want, got)
	}

	for _, junk := range []string{"サイトヘッダー", "トップ", "フッター", "偽物", "広告", "color"} {
		if strings.Contains(got, junk) {
			t.Errorf("expected %q to be stripped", junk)
		}
	}
}

func TestHTMLParser_TitleFallback(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader("<html><head><title> 募集要項 </title></head><body><p>勤務地：東京</p></body></html>"), "a.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "募集要項" {
		t.Errorf("expected <title> fallback, got %q", tree.Title)
	}
	if len(tree.Children) != 1 || tree.Children[0].Text != "勤務地：東京" {
		t.Errorf("unexpected children %+v", tree.Children)
	}
}

func TestHTMLParser_Fragment(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader("【勤務地】<br/>東京&amp;大阪"), "frag.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tree.PostingText(); got != "【勤務地】\n東京&大阪" {
		t.Errorf("unexpected posting text %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"\n  ":       " ",
		"a\n   b":    "a b",
		"  a ":       " a ",
		"東京\u3000駅": "東京 駅",
	}
	for in, want := range tests {
		if got := collapseSpace(in); got != want {
			t.Errorf("collapseSpace(%q): expected %q, got %q", in, want, got)
		}
	}
}
