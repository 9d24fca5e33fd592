// Package htmlutil provides SGML/HTML loading and text extraction for
// inline-annotated corpora.
package htmlutil

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LoadHTML parses HTML bytes into a goquery Document.
func LoadHTML(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// LoadHTMLString parses HTML string into a goquery Document.
func LoadHTMLString(htmlStr string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
}

// TextSegment is a run of document text together with the label of the
// innermost labelled element enclosing it ("" outside any).
type TextSegment struct {
	Text  string
	Label string
}

// LabelFunc reports the label an element assigns to its text, if any.
type LabelFunc func(elem *goquery.Selection) (string, bool)

// TextSegments walks root in document order and returns its text nodes,
// each labelled by the innermost element for which labelOf reports a label.
// Comments, scripts and styles are skipped.
func TextSegments(root *goquery.Selection, labelOf LabelFunc) []TextSegment {
	var segments []TextSegment

	var walk func(n *html.Node, label string)
	walk = func(n *html.Node, label string) {
		switch n.Type {
		case html.TextNode:
			if n.Data != "" {
				segments = append(segments, TextSegment{Text: n.Data, Label: label})
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if l, ok := labelOf(goquery.NewDocumentFromNode(n).Selection); ok {
				label = l
			}
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, label)
		}
	}

	for _, n := range root.Nodes {
		walk(n, "")
	}
	return segments
}

// AttrLabel returns a LabelFunc that labels elements whose tag name is in
// tags with the upper-cased value of attr.
func AttrLabel(attr string, tags ...string) LabelFunc {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = true
	}
	return func(elem *goquery.Selection) (string, bool) {
		if !set[goquery.NodeName(elem)] {
			return "", false
		}
		val, exists := elem.Attr(attr)
		val = strings.TrimSpace(val)
		if !exists || val == "" {
			return "", false
		}
		return strings.ToUpper(val), true
	}
}
