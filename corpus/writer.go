package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// OutputExt is the extension of entity output files.
const OutputExt = ".task1"

// Entity is a maximal run of tokens sharing one tag.
type Entity struct {
	Tag      string
	Position int
	Length   int
}

// Entities groups tags into entities. Runs of the same non-outside tag merge;
// a "B-" prefix always starts a new entity and "B-"/"I-" prefixes are
// stripped from the reported tag.
func Entities(doc *Document, tags []string) ([]Entity, error) {
	if len(tags) != doc.Len() {
		return nil, fmt.Errorf("%w: %s has %d tokens and %d predicted tags", ErrMisaligned, doc.Name, doc.Len(), len(tags))
	}

	var (
		entities []Entity
		cur      *Entity
	)
	for i, raw := range tags {
		tag, begin := splitTag(raw)
		tok := doc.Tokens[i]
		if tag == "" || tag == OutsideTag {
			cur = nil
			continue
		}
		if cur == nil || begin || cur.Tag != tag {
			entities = append(entities, Entity{Tag: tag, Position: tok.Position})
			cur = &entities[len(entities)-1]
		}
		cur.Length = tok.End() - cur.Position
	}
	return entities, nil
}

func splitTag(raw string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "B-"):
		return raw[2:], true
	case strings.HasPrefix(raw, "I-"):
		return raw[2:], false
	default:
		return raw, false
	}
}

// WriteEntities writes one "TAG position length" line per entity.
func WriteEntities(w io.Writer, doc *Document, tags []string) error {
	entities, err := Entities(doc, tags)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, e := range entities {
		if _, err := fmt.Fprintf(bw, "%s %d %d\n", e.Tag, e.Position, e.Length); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCollection writes <name>.task1 into dir for every document of coll,
// using the predicted tags keyed by document name.
func WriteCollection(dir string, coll *Collection, tags map[string][]string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, doc := range coll.Documents() {
		path := filepath.Join(dir, doc.Name+OutputExt)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteEntities(f, doc, tags[doc.Name]); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
