package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/jobpost/internal/doctree"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML postings such as saved job board pages.
type HTMLParser struct{}

// htmlPolicy keeps structural markup (headings, lists, tables, definition
// lists, line breaks) and drops everything executable.
var htmlPolicy = bluemonday.UGCPolicy()

// chrome lists page furniture that never belongs to a posting.
const chrome = "script, style, noscript, template, iframe, nav, header, footer, aside, form"

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dd": true,
	"table": true, "tr": true, "td": true, "blockquote": true, "hr": true,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	title := collapseSpace(page.Find("title").First().Text())
	page.Find(chrome).Remove()

	markup, err := page.Find("body").First().Html()
	if err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}
	doc, err := html.Parse(strings.NewReader(htmlPolicy.Sanitize(markup)))
	if err != nil {
		return nil, fmt.Errorf("parse sanitized html: %w", err)
	}

	b := newTreeBuilder()
	if body := findBody(doc); body != nil {
		walkHTML(b, body)
	} else {
		walkHTML(b, doc)
	}
	return b.finish(filename, title), nil
}

func walkHTML(b *treeBuilder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.write(collapseSpace(n.Data))
		return
	case html.ElementNode:
		if level := headingLevel(n.Data); level > 0 {
			b.heading(level, textContent(n))
			return
		}
		switch n.Data {
		case "br":
			b.write("\n")
			return
		case "dt", "th":
			b.heading(termLevel, textContent(n))
			return
		case "pre":
			b.paragraph(rawText(n))
			return
		}
		if blockElements[n.Data] {
			b.endBlock()
			defer b.endBlock()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(b, c)
	}
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// collapseSpace folds runs of source whitespace into single spaces, keeping
// one at either edge so adjacent inline text stays separated.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		out = " " + out
	}
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		out += " "
	}
	return out
}

func textContent(n *html.Node) string {
	return strings.TrimSpace(collapseSpace(rawText(n)))
}

func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
