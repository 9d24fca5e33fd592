package corpus

import (
	"encoding/json"
	"sort"
)

// Vocabulary is an immutable set of strings (affixes, gazetteer entries,
// stop words). The zero value is an empty vocabulary.
type Vocabulary struct {
	words map[string]struct{}
}

// NewVocabulary creates a vocabulary holding words. Duplicates collapse.
func NewVocabulary(words ...string) Vocabulary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return Vocabulary{words: set}
}

// Union returns a vocabulary containing the words of all vs.
func Union(vs ...Vocabulary) Vocabulary {
	set := make(map[string]struct{})
	for _, v := range vs {
		for w := range v.words {
			set[w] = struct{}{}
		}
	}
	return Vocabulary{words: set}
}

// Contains reports whether w is in the vocabulary.
func (v Vocabulary) Contains(w string) bool {
	_, ok := v.words[w]
	return ok
}

// Len returns the number of distinct words.
func (v Vocabulary) Len() int {
	return len(v.words)
}

// Words returns the words in sorted order.
func (v Vocabulary) Words() []string {
	out := make([]string, 0, len(v.words))
	for w := range v.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the vocabulary as a sorted list of words.
func (v Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Words())
}

// UnmarshalJSON decodes a list of words.
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return err
	}
	*v = NewVocabulary(words...)
	return nil
}
