package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/jobpost/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown postings using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src = bytes.TrimPrefix(src, []byte("\ufeff"))

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	b := newTreeBuilder()
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.heading(node.Level, extractText(node, src))
		case *ast.ThematicBreak:
			b.endBlock()
		default:
			b.paragraph(extractText(n, src))
		}
	}
	return b.finish(filename, ""), nil
}

// extractText gets the text content of a goldmark AST node. Blocks are
// separated by newlines; inline markup is dropped.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(node.Value)
		return
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeText(buf, c, src)
	}
	if n.Type() == ast.TypeBlock && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
}
