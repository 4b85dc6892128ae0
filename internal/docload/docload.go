// Package docload turns files a user points at into the single cleaned
// text string the rest of the pipeline works on. Plain text, Markdown,
// HTML and PDF are supported; everything funnels through normalize.Clean
// so downstream sentence splitting sees uniform input.
package docload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperifyio/goanswer/internal/normalize"
)

// Document is the in-memory representation of one loaded source. It is
// immutable once built; loading a new source replaces it wholesale.
type Document struct {
	Name string
	Text string
	// PagesSkipped counts PDF pages whose extraction failed and was
	// skipped. Zero for non-PDF sources.
	PagesSkipped int
}

// Chars returns the document length in bytes of cleaned text.
func (d Document) Chars() int { return len(d.Text) }

// Words returns the whitespace-delimited word count of cleaned text.
func (d Document) Words() int { return len(strings.Fields(d.Text)) }

// ErrEmptyDocument means the source was read but no usable text came out
// of it. This is terminal for the load: there is nothing to ask about.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// Load reads and extracts the file at path, dispatching on extension.
// Unknown extensions are treated as plain text.
func Load(path string) (Document, error) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, skipped, err := fromPDF(path)
		if err != nil {
			return Document{}, fmt.Errorf("load %s: %w", name, err)
		}
		return build(name, text, skipped)
	case ".html", ".htm":
		raw, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("load %s: %w", name, err)
		}
		text, err := fromHTML(raw)
		if err != nil {
			return Document{}, fmt.Errorf("load %s: %w", name, err)
		}
		return build(name, text, 0)
	case ".md", ".markdown":
		raw, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("load %s: %w", name, err)
		}
		return build(name, fromMarkdown(raw), 0)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("load %s: %w", name, err)
		}
		return build(name, string(raw), 0)
	}
}

// FromString wraps already-held text (pasted input, stdin) as a Document.
func FromString(name, raw string) (Document, error) {
	return build(name, raw, 0)
}

func build(name, raw string, skipped int) (Document, error) {
	text := normalize.Clean(raw)
	if text == "" {
		return Document{}, fmt.Errorf("%s: %w", name, ErrEmptyDocument)
	}
	return Document{Name: name, Text: text, PagesSkipped: skipped}, nil
}
