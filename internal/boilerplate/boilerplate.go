// Package boilerplate recognizes sentences that are page furniture rather than
// content: copyright notices, navigation labels, publishing metadata.
//
// A sentence is scored by the share of its words whose English stem appears in a
// list of furniture vocabulary. Sentences near the start or end of a page are judged
// more strictly than those in the middle, since headers and footers live there.
package boilerplate

import (
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// vocabulary lists furniture terms by where they usually show up; entries are
// snowball stems
var vocabulary = map[string][]string{
	"publishing": {"author", "appendix", "chapter", "edit", "ebook", "isbn", "publish", "public"},
	"navigation": {"home", "menu", "navig", "login", "regist", "share", "subscrib", "search", "skip", "cooki"},
	"legal":      {"copyright", "permiss", "polici", "privaci", "reproduc", "reproduct", "reserv", "right", "term"},
	"reference":  {"citat", "refer", "retriev", "https", "wikipedia", "wikimedia"},
}

var stems = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, words := range vocabulary {
		for _, w := range words {
			set[w] = struct{}{}
		}
	}
	return set
}()

var wordRegex = regexp.MustCompile(`[a-zA-Z]+`)

// thresholds at the page edges and in the middle
const (
	edgeThreshold   = 0.1
	middleThreshold = 0.33
	smallPageLimit  = 3
	smallThreshold  = 0.5
)

// Detector flags boilerplate sentences.
type Detector struct{}

// New creates a Detector.
func New() *Detector {
	return &Detector{}
}

// Ratio returns the share of words in text that are furniture vocabulary.
// Text without words has ratio 0.
func (d *Detector) Ratio(text string) float64 {
	words := wordRegex.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return 0
	}

	hits := 0
	for _, w := range words {
		stemmed, err := snowball.Stem(w, "english", true)
		if err != nil {
			stemmed = w
		}
		if _, ok := stems[stemmed]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}

// IsBoilerplate reports whether the sentence at index of total is furniture.
// Out-of-range positions are never boilerplate.
func (d *Detector) IsBoilerplate(sentence string, index, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}
	return d.Ratio(sentence) > threshold(index, total)
}

// Filter returns the sentences that are not boilerplate, in order.
func (d *Detector) Filter(sentences []string) []string {
	kept := make([]string, 0, len(sentences))
	for i, s := range sentences {
		if !d.IsBoilerplate(s, i, len(sentences)) {
			kept = append(kept, s)
		}
	}
	return kept
}

// threshold rises linearly from the page edges to the middle
func threshold(index, total int) float64 {
	if total <= smallPageLimit {
		return smallThreshold
	}
	position := float64(index) / float64(total-1)
	centrality := 1.0 - math.Abs(2.0*position-1.0)
	return edgeThreshold + (middleThreshold-edgeThreshold)*centrality
}
