package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/jobpost/internal/doctree"
)

// TextParser handles plain text postings. Paragraphs separated by blank
// lines become untitled nodes; header detection is left to the splitter.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder
	first := true

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{Source: filename}
	for _, para := range paragraphs {
		tree.Children = append(tree.Children, &doctree.DocNode{
			Text: para,
		})
	}

	return tree, nil
}
