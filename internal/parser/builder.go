package parser

import (
	"strings"

	"github.com/dgallion1/jobpost/internal/doctree"
)

// termLevel nests definition terms and table header cells below any h1-h6.
const termLevel = 7

type stackEntry struct {
	node  *doctree.DocNode
	level int
}

// treeBuilder assembles a DocTree from a stream of headings and text. Text
// that appears before the first heading is kept as an untitled leading node.
// A level-1 heading that opens the document becomes the tree title.
type treeBuilder struct {
	root  *doctree.DocNode
	stack []stackEntry
	buf   strings.Builder
	title string
	body  bool
}

func newTreeBuilder() *treeBuilder {
	root := &doctree.DocNode{}
	return &treeBuilder{root: root, stack: []stackEntry{{node: root}}}
}

func (b *treeBuilder) heading(level int, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	b.endBlock()
	if level == 1 && b.title == "" && !b.body {
		b.title = title
		return
	}
	b.body = true

	node := &doctree.DocNode{Title: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, stackEntry{node: node, level: level})
}

// write appends inline text to the current block.
func (b *treeBuilder) write(s string) {
	b.buf.WriteString(s)
}

// endBlock moves the current block into the innermost open section.
func (b *treeBuilder) endBlock() {
	t := strings.TrimSpace(b.buf.String())
	b.buf.Reset()
	if t == "" {
		return
	}
	b.body = true
	top := b.stack[len(b.stack)-1].node
	if top.Text != "" {
		top.Text += "\n" + t
	} else {
		top.Text = t
	}
}

func (b *treeBuilder) paragraph(s string) {
	b.endBlock()
	b.write(s)
	b.endBlock()
}

// finish returns the tree. declared is a title from document metadata, used
// when no opening level-1 heading was found.
func (b *treeBuilder) finish(source, declared string) *doctree.DocTree {
	b.endBlock()
	tree := &doctree.DocTree{Title: b.title, Source: source}
	if tree.Title == "" {
		tree.Title = strings.TrimSpace(declared)
	}
	if b.root.Text != "" {
		tree.Children = append(tree.Children, &doctree.DocNode{Text: b.root.Text})
	}
	tree.Children = append(tree.Children, b.root.Children...)
	return tree
}
