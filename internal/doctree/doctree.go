package doctree

import "strings"

// DocTree is the root of a parsed posting document.
type DocTree struct {
	Title    string     // Title declared by the document itself, if any
	Source   string     // Originating filename
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leading text)
	Text     string     // Text content of this node
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// PostingText renders the tree as job-posting text: the document title on
// the first line, then every heading as a header line followed by its text,
// in document order.
func (t *DocTree) PostingText() string {
	var lines []string
	if title := strings.TrimSpace(t.Title); title != "" {
		lines = append(lines, title)
	}
	var walk func([]*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if h := HeaderLine(n.Title); h != "" {
				lines = append(lines, h)
			}
			if text := strings.TrimSpace(n.Text); text != "" {
				lines = append(lines, text)
			}
			walk(n.Children)
		}
	}
	walk(t.Children)
	return strings.Join(lines, "\n")
}

// HeaderLine wraps a heading in 【】 so the section splitter sees it as a
// header. Headings that already carry brackets or a colon are kept as is.
func HeaderLine(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if strings.ContainsAny(title, "【】[]［］〔〕:：") {
		return title
	}
	return "【" + title + "】"
}
