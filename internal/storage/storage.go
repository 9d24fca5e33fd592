// Package storage provides access to the resource folder holding word lists,
// the morphological lexicon and embedding tables.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/happyhackingspace/nertag/corpus"
	"github.com/happyhackingspace/nertag/internal/morph"
	"github.com/happyhackingspace/nertag/internal/textutil"
)

// Storage wraps the resource folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given resource folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// Path resolves name inside the folder. Absolute names are returned as is.
func (s *Storage) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Folder, name)
}

// WordList reads a one-entry-per-line word list. Multi-word entries also
// contribute each of their words. An empty name yields an empty vocabulary.
func (s *Storage) WordList(name string) (corpus.Vocabulary, error) {
	if name == "" {
		return corpus.Vocabulary{}, nil
	}
	f, err := os.Open(s.Path(name))
	if err != nil {
		return corpus.Vocabulary{}, fmt.Errorf("word list: %w", err)
	}
	defer f.Close()

	words, err := readWordList(f)
	if err != nil {
		return corpus.Vocabulary{}, fmt.Errorf("word list %s: %w", name, err)
	}
	slog.Debug("Word list loaded", "name", name, "entries", len(words))
	return corpus.NewVocabulary(words...), nil
}

func readWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(textutil.NormalizeWhitespaces(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
		if tokens := textutil.Tokenize(line); len(tokens) > 1 {
			words = append(words, tokens...)
		}
	}
	return words, scanner.Err()
}

// Lexicon reads the morphological lexicon. A missing file or empty name
// yields a lexicon that analyses by fallback rules only.
func (s *Storage) Lexicon(name string) (*morph.Lexicon, error) {
	lex := morph.NewLexicon()
	if name == "" {
		return lex, nil
	}
	f, err := os.Open(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("Lexicon not found, using fallback analysis", "path", s.Path(name))
		return lex, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}
	defer f.Close()

	if err := lex.Load(f); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", name, err)
	}
	slog.Debug("Lexicon loaded", "name", name, "forms", lex.Len())
	return lex, nil
}
