// Package corpus holds the token and document model shared by readers,
// features and writers.
package corpus

// Token is a single tagged unit of text. ID is the token's index within its
// document; Position and Length are rune offsets into the source text.
type Token struct {
	ID       int    `json:"id"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Text     string `json:"text"`
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Position + t.Length
}

// Morph is the morphological analysis of a token.
type Morph struct {
	POS  string `json:"pos,omitempty"`
	Case string `json:"case,omitempty"`
}

// MorphAnalyzer assigns morphological tags to words.
type MorphAnalyzer interface {
	Analyze(word string) Morph
}
