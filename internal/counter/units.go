package counter

import (
	"strings"
	"unicode/utf8"
)

// CharCounter counts runes, so "Grüße" is five characters, not seven bytes.
type CharCounter struct{}

// NewCharCounter creates a CharCounter.
func NewCharCounter() *CharCounter {
	return &CharCounter{}
}

// Count returns the number of runes in text.
func (cc *CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// Name returns "characters".
func (cc *CharCounter) Name() string {
	return "characters"
}

// WordCounter counts whitespace-separated words.
type WordCounter struct{}

// NewWordCounter creates a WordCounter.
func NewWordCounter() *WordCounter {
	return &WordCounter{}
}

// Count returns the number of fields in text.
func (wc *WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// Name returns "words".
func (wc *WordCounter) Name() string {
	return "words"
}
