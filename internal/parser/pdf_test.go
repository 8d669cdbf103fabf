package parser

import (
	"strings"
	"testing"
)

func TestPagesTree(t *testing.T) {
	tree := pagesTree("job.pdf", "【仕事内容】\n開発\f\f  \n【勤務地】\n東京\n")
	if tree.Source != "job.pdf" {
		t.Errorf("expected source job.pdf, got %q", tree.Source)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 pages with text, got %d", len(tree.Children))
	}
	if tree.Children[0].Page != 1 || tree.Children[1].Page != 3 {
		t.Errorf("expected pages 1 and 3, got %d and %d", tree.Children[0].Page, tree.Children[1].Page)
	}
	if tree.Children[0].Title != "" {
		t.Errorf("expected untitled page nodes, got %q", tree.Children[0].Title)
	}
	if got := tree.PostingText(); got != "【仕事内容】\n開発\n【勤務地】\n東京" {
		t.Errorf("unexpected posting text %q", got)
	}
}

func TestPDFParser_RejectsGarbage(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(strings.NewReader("not a pdf"), "bad.pdf"); err == nil {
		t.Error("expected error for invalid pdf")
	}
}
