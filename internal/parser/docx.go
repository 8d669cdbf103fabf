package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/jobpost/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx postings. Paragraphs with a heading style become
// sections; tables are read row by row with the first cell as the heading.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReaderAt+size, so write to temp file.
	tmp, err := os.CreateTemp("", "jobpost-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := newTreeBuilder()
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			addDocxParagraph(b, it)
		case *docx.Table:
			addDocxTable(b, it)
		}
	}
	return b.finish(filename, ""), nil
}

func addDocxParagraph(b *treeBuilder, para *docx.Paragraph) {
	text := docxParagraphText(para)
	if text == "" {
		return
	}
	if level := docxHeadingLevel(para); level > 0 {
		b.heading(level, text)
		return
	}
	b.paragraph(text)
}

// addDocxTable reads two-column layouts such as "勤務地 | 東京都" as a
// heading followed by its text.
func addDocxTable(b *treeBuilder, tbl *docx.Table) {
	for _, row := range tbl.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var parts []string
			for _, para := range cell.Paragraphs {
				if t := docxParagraphText(para); t != "" {
					parts = append(parts, t)
				}
			}
			cells = append(cells, strings.Join(parts, "\n"))
		}
		if len(cells) == 0 {
			continue
		}
		if len(cells) == 1 {
			b.paragraph(cells[0])
			continue
		}
		b.heading(termLevel, cells[0])
		b.paragraph(strings.Join(cells[1:], "\n"))
	}
}

// docxHeadingLevel maps "Title", "Heading1" and "heading 1" style names to
// a level; other styles are body text.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	n, ok := strings.CutPrefix(style, "heading")
	if !ok {
		return 0
	}
	level, err := strconv.Atoi(n)
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch v := rc.(type) {
			case *docx.Text:
				buf.WriteString(v.Text)
			case *docx.Tab:
				buf.WriteString(" ")
			case *docx.BarterRabbet:
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
