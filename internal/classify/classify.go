// Package classify decides whether a text fragment is natural language, program code,
// or undecidable, using character statistics of its signature.
//
// Training examples are mapped through a preprocessing function (normally
// signature.Transform) and aggregated into one symbol-frequency profile per label.
// A query is mapped the same way and assigned the label whose profile is closest by
// cosine similarity. Equal scores are resolved in the fixed order Open, Drop, Take so
// that an undecided answer is preferred over a forced guess.
package classify

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
)

// ErrConfiguration reports training data that cannot produce a usable classifier.
var ErrConfiguration = errors.New("classifier configuration error")

// scoreEpsilon is the tolerance under which two similarity scores count as tied
const scoreEpsilon = 1e-12

// Preprocessor maps raw text to the string whose characters are counted.
type Preprocessor func(string) string

// profile is the normalized symbol histogram of one label
type profile struct {
	label    Label
	weights  map[rune]float64 // unit L2 norm
	examples int
}

// Classifier labels text fragments. It is immutable after New and safe for
// concurrent use.
type Classifier struct {
	profiles []profile // sorted by tie-break priority
	preproc  Preprocessor
	debug    bool
	logger   *slog.Logger
}

// Option configures a Classifier at construction.
type Option func(*Classifier)

// WithDebug enables one debug log line per classification.
func WithDebug(debug bool) Option {
	return func(c *Classifier) {
		c.debug = debug
	}
}

// WithLogger sets the logger used for debug output (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New trains a Classifier from labelled examples.
//
// Every example is passed through preproc and counted into the profile of its label.
// The label set is whatever appears in examples. New fails with ErrConfiguration when
// there are no examples, when an example has an unknown label, or when a label's
// examples all preprocess to the empty string.
func New(examples []Example, preproc Preprocessor, opts ...Option) (*Classifier, error) {
	if preproc == nil {
		return nil, fmt.Errorf("%w: no preprocessing function", ErrConfiguration)
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: no training examples", ErrConfiguration)
	}

	c := &Classifier{
		preproc: preproc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	counts := make(map[Label]map[rune]float64)
	examplesPerLabel := make(map[Label]int)
	for i, ex := range examples {
		if !ex.Label.Valid() {
			return nil, fmt.Errorf("%w: example %d has invalid label %v", ErrConfiguration, i, ex.Label)
		}
		hist, ok := counts[ex.Label]
		if !ok {
			hist = make(map[rune]float64)
			counts[ex.Label] = hist
		}
		for _, r := range preproc(ex.Text) {
			hist[r]++
		}
		examplesPerLabel[ex.Label]++
	}

	for label, hist := range counts {
		weights := normalize(hist)
		if weights == nil {
			return nil, fmt.Errorf("%w: label %v has %d examples but an empty profile",
				ErrConfiguration, label, examplesPerLabel[label])
		}
		c.profiles = append(c.profiles, profile{
			label:    label,
			weights:  weights,
			examples: examplesPerLabel[label],
		})
	}

	sort.Slice(c.profiles, func(i, j int) bool {
		return priority(c.profiles[i].label) < priority(c.profiles[j].label)
	})

	slog.Debug("Classifier trained", "examples", len(examples), "labels", len(c.profiles))
	return c, nil
}

// Labels returns the trained labels in tie-break order.
func (c *Classifier) Labels() []Label {
	labels := make([]Label, len(c.profiles))
	for i, p := range c.profiles {
		labels[i] = p.label
	}
	return labels
}

// Classify returns the label whose profile best matches the signature of text.
// Text with an empty signature is Open.
func (c *Classifier) Classify(text string) Label {
	sig := c.preproc(text)
	label, scores := c.decide(sig)

	if c.debug {
		c.logger.Debug("classify",
			"input", text,
			"signature", sig,
			"label", label.String(),
			"scores", formatScores(scores),
		)
	}
	return label
}

// Scores returns the similarity of text to every trained profile.
func (c *Classifier) Scores(text string) map[Label]float64 {
	_, scores := c.decide(c.preproc(text))
	return scores
}

// decide picks the best label for an already preprocessed signature
func (c *Classifier) decide(sig string) (Label, map[Label]float64) {
	query := make(map[rune]float64)
	for _, r := range sig {
		query[r]++
	}
	query = normalize(query)
	if query == nil {
		return Open, nil
	}

	scores := make(map[Label]float64, len(c.profiles))
	best := c.profiles[0].label
	bestScore := math.Inf(-1)
	// profiles are in priority order, so only a strictly better score replaces best
	for _, p := range c.profiles {
		score := cosine(query, p.weights)
		scores[p.label] = score
		if score > bestScore+scoreEpsilon {
			best = p.label
			bestScore = score
		}
	}
	return best, scores
}

// normalize scales a histogram to unit L2 norm; returns nil for an empty histogram
func normalize(hist map[rune]float64) map[rune]float64 {
	var sum float64
	for _, v := range hist {
		sum += v * v
	}
	if sum == 0 {
		return nil
	}
	norm := math.Sqrt(sum)
	out := make(map[rune]float64, len(hist))
	for r, v := range hist {
		out[r] = v / norm
	}
	return out
}

// cosine computes the dot product of two unit vectors
func cosine(a, b map[rune]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for r, v := range a {
		dot += v * b[r]
	}
	return dot
}

// formatScores renders scores in a stable order for log output
func formatScores(scores map[Label]float64) string {
	if len(scores) == 0 {
		return ""
	}
	labels := make([]Label, 0, len(scores))
	for l := range scores {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return priority(labels[i]) < priority(labels[j]) })

	var sb strings.Builder
	for i, l := range labels {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s=%.4f", l, scores[l])
	}
	return sb.String()
}
