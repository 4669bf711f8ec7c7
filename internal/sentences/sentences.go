// Package sentences splits a blob of filtered page text into sentences.
package sentences

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Segmenter splits text into sentences in source order.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// Prose segments with prose's punkt-based sentence tokenizer. Tagging, tokenization
// and entity extraction are disabled, so no model is loaded.
type Prose struct{}

// NewProse creates a Prose segmenter.
func NewProse() *Prose {
	return &Prose{}
}

// Segment returns the sentences of text. Blank text yields no sentences.
func (p *Prose) Segment(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(true),
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to segment text: %w", err)
	}

	var out []string
	for _, sent := range doc.Sentences() {
		if s := strings.TrimSpace(sent.Text); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// SentinelSplitter treats a sentinel as a hard sentence boundary. The filter joins
// the sentinel in as a whitespace-separated token, so only a field equal to the
// sentinel cuts a sentence; prose that merely contains it ("T-X-ray") is left
// alone. Pieces left empty are discarded, so the sentinel itself never reaches
// the output.
type SentinelSplitter struct {
	inner    Segmenter
	sentinel string
}

// NewSentinelSplitter wraps inner.
func NewSentinelSplitter(inner Segmenter, sentinel string) *SentinelSplitter {
	return &SentinelSplitter{inner: inner, sentinel: sentinel}
}

// Segment runs the inner segmenter and splits its sentences on sentinel tokens.
func (s *SentinelSplitter) Segment(text string) ([]string, error) {
	sents, err := s.inner.Segment(text)
	if err != nil {
		return nil, err
	}
	if s.sentinel == "" {
		return sents, nil
	}

	var out []string
	for _, sent := range sents {
		out = append(out, s.split(sent)...)
	}
	return out, nil
}

// split cuts sent at every field equal to the sentinel
func (s *SentinelSplitter) split(sent string) []string {
	// fast path: most sentences carry no sentinel at all
	if !strings.Contains(sent, s.sentinel) {
		if sent = strings.TrimSpace(sent); sent == "" {
			return nil
		}
		return []string{sent}
	}

	var pieces []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			pieces = append(pieces, strings.Join(current, " "))
			current = current[:0]
		}
	}
	for _, field := range strings.Fields(sent) {
		if field == s.sentinel {
			flush()
			continue
		}
		current = append(current, field)
	}
	flush()
	return pieces
}
