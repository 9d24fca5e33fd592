package corpus

import (
	"io"

	"github.com/happyhackingspace/nertag/internal/htmlutil"
	"github.com/happyhackingspace/nertag/internal/textutil"
)

// EnamexExt is the file extension of inline-annotated SGML corpus files.
const EnamexExt = ".sgml"

// OutsideTag labels tokens that belong to no entity.
const OutsideTag = "O"

var enamexLabel = htmlutil.AttrLabel("type", "enamex", "numex", "timex")

// ReadEnamex reads every SGML file in dir. Entities are marked inline as
// <ENAMEX TYPE="PER">...</ENAMEX> (or NUMEX/TIMEX); their tokens are tagged
// with the TYPE value and all other tokens with OutsideTag.
func ReadEnamex(dir string, analyzer MorphAnalyzer) (*Collection, error) {
	return readDir(dir, EnamexExt, func(r io.Reader, name string) (*Document, error) {
		return ReadEnamexDocument(r, name, analyzer)
	})
}

// ReadEnamexDocument parses one SGML document. Token positions are rune
// offsets into the markup-free text; '.', '!' and '?' end sentences.
func ReadEnamexDocument(r io.Reader, name string, analyzer MorphAnalyzer) (*Document, error) {
	doc, err := htmlutil.LoadHTML(r)
	if err != nil {
		return nil, err
	}

	var (
		tokens []Token
		tags   = []string{}
		breaks []int
		offset int
	)
	for _, seg := range htmlutil.TextSegments(doc.Find("body"), enamexLabel) {
		tag := seg.Label
		if tag == "" {
			tag = OutsideTag
		}
		for _, sp := range textutil.TokenizeSpans(seg.Text) {
			if n := len(tokens); n > 0 && isSentenceEnd(tokens[n-1].Text) {
				breaks = append(breaks, n)
			}
			tokens = append(tokens, Token{
				ID:       len(tokens),
				Position: offset + sp.Start,
				Length:   sp.End - sp.Start,
				Text:     sp.Text,
			})
			tags = append(tags, tag)
		}
		offset += len([]rune(seg.Text))
	}
	return NewDocument(name, tokens, tags, breaks, analyzer)
}

func isSentenceEnd(text string) bool {
	return text == "." || text == "!" || text == "?"
}
