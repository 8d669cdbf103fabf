package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# バックエンドエンジニア

株式会社サンプル

## 仕事内容

API開発をお任せします。

### 使用技術

Go と PostgreSQL

## 勤務地

東京都千代田区
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "job.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The opening h1 names the posting.
	if tree.Title != "バックエンドエンジニア" {
		t.Errorf("expected title %q, got %q", "バックエンドエンジニア", tree.Title)
	}
	if tree.Source != "job.md" {
		t.Errorf("expected source %q, got %q", "job.md", tree.Source)
	}

	// Leading text, then two h2 sections.
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 top-level children, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "" || tree.Children[0].Text != "株式会社サンプル" {
		t.Errorf("expected untitled leading node, got %+v", tree.Children[0])
	}

	job := tree.Children[1]
	if job.Title != "仕事内容" {
		t.Errorf("expected %q, got %q", "仕事内容", job.Title)
	}
	if job.Text != "API開発をお任せします。" {
		t.Errorf("expected single copy of paragraph text, got %q", job.Text)
	}
	if len(job.Children) != 1 || job.Children[0].Title != "使用技術" {
		t.Fatalf("expected 使用技術 under 仕事内容, got %+v", job.Children)
	}
	if tree.Children[2].Title != "勤務地" {
		t.Errorf("expected %q, got %q", "勤務地", tree.Children[2].Title)
	}

	want := "バックエンドエンジニア\n株式会社サンプル\n【仕事内容】\nAPI開発をお任せします。\n【使用技術】\nGo と PostgreSQL\n【勤務地】\n東京都千代田区"
	if got := tree.PostingText(); got != want {
		t.Errorf("expected posting text %q, got %q", want, got)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No headings: all text should be collected into a single child node.
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child for headingless markdown, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "Just some plain text.\nAnother paragraph here." {
		t.Errorf("unexpected text %q", tree.Children[0].Text)
	}
}

func TestMarkdownParser_ListsAndCode(t *testing.T) {
	input := "## 待遇・福利厚生\n\n- 社会保険完備\n- 交通費支給\n\n```\n10:00〜19:00\n```\n\n**リモート可**\n"

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "benefits.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(tree.Children))
	}
	want := "社会保険完備\n交通費支給\n10:00〜19:00\nリモート可"
	if got := tree.Children[0].Text; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownParser_H1AfterContentIsASection(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader("前置き\n\n# 勤務地\n\n東京"), "late.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "" {
		t.Errorf("expected no title, got %q", tree.Title)
	}
	if len(tree.Children) != 2 || tree.Children[1].Title != "勤務地" {
		t.Fatalf("expected leading node and 勤務地 section, got %+v", tree.Children)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}
