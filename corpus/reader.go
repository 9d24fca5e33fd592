package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TokensExt is the file extension of token-table corpus files.
const TokensExt = ".tokens"

// ReadTagged reads every token-table file in dir. Each token must carry a
// gold tag in its fifth column.
func ReadTagged(dir string, analyzer MorphAnalyzer) (*Collection, error) {
	return readDir(dir, TokensExt, func(r io.Reader, name string) (*Document, error) {
		return ReadDocument(r, name, true, analyzer)
	})
}

// ReadUntagged reads every token-table file in dir, ignoring tag columns.
func ReadUntagged(dir string, analyzer MorphAnalyzer) (*Collection, error) {
	return readDir(dir, TokensExt, func(r io.Reader, name string) (*Document, error) {
		return ReadDocument(r, name, false, analyzer)
	})
}

type parseFunc func(r io.Reader, name string) (*Document, error)

// readDir parses the files of dir with the given extension in name order.
// Unreadable files are skipped with a warning; malformed ones abort.
func readDir(dir, ext string, parse parseFunc) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	coll := &Collection{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("Cannot read corpus file", "path", path, "error", err)
			continue
		}
		doc, err := parse(f, strings.TrimSuffix(e.Name(), ext))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := coll.Add(doc); err != nil {
			return nil, err
		}
	}
	slog.Debug("Corpus loaded", "dir", dir, "documents", coll.Len())
	return coll, nil
}

// ReadDocument parses one token table. Lines hold whitespace-separated
// "id position length text [tag]"; a blank line ends a sentence and lines
// starting with '#' are comments. File ids are discarded and tokens are
// numbered by order.
func ReadDocument(r io.Reader, name string, tagged bool, analyzer MorphAnalyzer) (*Document, error) {
	var (
		tokens []Token
		tags   []string
		breaks []int
	)
	if tagged {
		tags = []string{}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			breaks = append(breaks, len(tokens))
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", lineNo, len(parts))
		}
		pos, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: position: %w", lineNo, err)
		}
		length, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: length: %w", lineNo, err)
		}
		tokens = append(tokens, Token{
			ID:       len(tokens),
			Position: pos,
			Length:   length,
			Text:     parts[3],
		})
		if tagged {
			if len(parts) < 5 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingTags)
			}
			tags = append(tags, parts[4])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewDocument(name, tokens, tags, breaks, analyzer)
}
