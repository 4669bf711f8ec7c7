package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter counts tokens with the cl100k_base encoding.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // guards encoding; the tiktoken cache is not documented as concurrency-safe
}

// NewTokenCounter loads the cl100k_base encoding. The first call may download the
// BPE ranks unless they are cached (TIKTOKEN_CACHE_DIR).
func NewTokenCounter() (*TokenCounter, error) {
	slog.Debug("Loading cl100k_base encoding")

	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()
	// nil allowed/disallowed special tokens: count the text as plain prose
	tokens := tc.encoding.Encode(text, nil, nil)
	return len(tokens)
}

// Name returns the unit name including the encoding.
func (tc *TokenCounter) Name() string {
	return "tokens (cl100k_base)"
}
