// Package counter measures text in characters, words, or tokens.
//
// The fragment filter uses character counts for its short-fragment threshold, and
// the crawl driver uses a Budget to cap how much sentence output a page may emit.
// Token counting uses tiktoken's cl100k_base encoding.
package counter

import "fmt"

// Counter measures a piece of text in some unit.
type Counter interface {
	// Count returns the number of units in text.
	Count(text string) int

	// Name returns the unit name for logging.
	Name() string
}

// Method selects a counting unit.
type Method int

const (
	// Characters counts Unicode code points (default)
	Characters Method = iota
	// Words counts whitespace-separated fields
	Words
	// Tokens counts cl100k_base tokens
	Tokens
)

// String returns the unit name of the method.
func (m Method) String() string {
	switch m {
	case Characters:
		return "characters"
	case Words:
		return "words"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// New returns the Counter for method.
// Only token counting can fail, when the encoding cannot be loaded.
func New(method Method) (Counter, error) {
	switch method {
	case Characters:
		return NewCharCounter(), nil
	case Words:
		return NewWordCounter(), nil
	case Tokens:
		tc, err := NewTokenCounter()
		if err != nil {
			return nil, err
		}
		return tc, nil
	default:
		return nil, fmt.Errorf("unknown counting method %d", int(method))
	}
}
