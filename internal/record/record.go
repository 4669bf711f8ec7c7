// Package record writes the output of a crawl as JSON lines, one object per
// h1 title or sentence.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Record is one output item; exactly one field is set.
type Record struct {
	H1       string `json:"h1,omitempty"`
	Sentence string `json:"sentence,omitempty"`
}

// Title creates an h1 record.
func Title(text string) Record {
	return Record{H1: text}
}

// Sentence creates a sentence record.
func Sentence(text string) Record {
	return Record{Sentence: text}
}

// Writer encodes records to an underlying stream.
type Writer struct {
	enc   *json.Encoder
	count int
}

// NewWriter creates a Writer. Pretty output indents each record.
func NewWriter(w io.Writer, pretty bool) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Writer{enc: enc}
}

// Write encodes rec followed by a newline.
func (w *Writer) Write(rec Record) error {
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
