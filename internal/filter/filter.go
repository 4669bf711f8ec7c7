// Package filter turns the raw text fragments of a page into one blob of prose.
//
// Each fragment is normalized (HTML entities unescaped, whitespace collapsed,
// trimmed). Empty fragments vanish. Fragments shorter than the minimum length are
// kept without classification. Longer fragments are classified; natural language is
// kept, while code and undecided fragments are replaced by a sentinel so that
// sentence segmentation sees a break instead of gluing neighbours together.
package filter

import (
	"html"
	"log/slog"
	"strings"

	"github.com/chriscorrea/prosesift/internal/classify"
	"github.com/chriscorrea/prosesift/internal/counter"
)

const (
	// DefaultMinLength is the length below which fragments bypass classification
	DefaultMinLength = 10
	// DefaultSentinel replaces dropped and undecided fragments
	DefaultSentinel = "-X-"
)

// Classifier labels a single fragment.
type Classifier interface {
	Classify(text string) classify.Label
}

// Filter applies the keep/drop policy to page fragments.
type Filter struct {
	classifier Classifier
	minLength  int
	sentinel   string
	length     counter.Counter
	logger     *slog.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithMinLength sets the classification threshold in characters.
func WithMinLength(n int) Option {
	return func(f *Filter) {
		if n >= 0 {
			f.minLength = n
		}
	}
}

// WithSentinel sets the placeholder for removed fragments.
func WithSentinel(s string) Option {
	return func(f *Filter) {
		if s != "" {
			f.sentinel = s
		}
	}
}

// WithLogger sets the logger for per-fragment debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Filter around classifier.
func New(classifier Classifier, opts ...Option) *Filter {
	f := &Filter{
		classifier: classifier,
		minLength:  DefaultMinLength,
		sentinel:   DefaultSentinel,
		length:     counter.NewCharCounter(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Sentinel returns the placeholder used for removed fragments.
func (f *Filter) Sentinel() string {
	return f.sentinel
}

// Normalize unescapes HTML entities, collapses whitespace runs to one space and
// trims the result.
func Normalize(raw string) string {
	// Fields splits on Unicode white space, so unescaped &nbsp; collapses as well
	return strings.Join(strings.Fields(html.UnescapeString(raw)), " ")
}

// Apply filters fragments in order and returns the kept texts and sentinels.
func (f *Filter) Apply(fragments []string) []string {
	kept := make([]string, 0, len(fragments))

	for _, raw := range fragments {
		text := Normalize(raw)
		if text == "" {
			continue
		}

		if f.length.Count(text) < f.minLength {
			f.logger.Debug("fragment", "label", "_SMALL_", "text", text)
			kept = append(kept, text)
			continue
		}

		label := f.classifier.Classify(text)
		f.logger.Debug("fragment", "label", label.String(), "text", text)

		switch label {
		case classify.Take:
			kept = append(kept, text)
		case classify.Drop, classify.Open:
			kept = append(kept, f.sentinel)
		default:
			// unknown labels are treated as undecided
			kept = append(kept, f.sentinel)
		}
	}

	return kept
}

// Join concatenates filtered fragments with single spaces.
func Join(kept []string) string {
	return strings.Join(kept, " ")
}

// Blob filters fragments and joins the result into the text handed to sentence
// segmentation.
func (f *Filter) Blob(fragments []string) string {
	return Join(f.Apply(fragments))
}
