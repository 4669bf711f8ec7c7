// Package signature maps raw text onto a reduced symbol alphabet whose character
// frequencies separate program code from natural language.
//
// The mapping is a fixed pipeline of regular-expression substitutions. Each step
// operates on the output of the previous one, so the order is significant:
//
//  1. special:   '#', '@' and '^' become '@'
//  2. digit:     decimal digits of any script become '#'
//  3. word:      remaining letters, numbers and '_' become 'L'
//  4. idiom3:    three-character code idioms (===, !==, ();) become "ccc"
//  5. idiom2:    two-character code idioms (&&, ||, ++, ==, =" ...) become "cc"
//  6. structure: brackets, slashes, pipes and angles become ']'
//
// Digits are replaced before the word sweep so they keep their own class, and the
// three-character idioms run before the two-character ones so "();" is not split
// into "cc" plus a dangling ';'. The character classes are Unicode-aware (RE2's
// \d and \w only match ASCII), so umlauts and accented letters fold into 'L' like
// any other letter.
//
// Usage Example:
//
//	sig := signature.Transform("if (a1 === b) { f(); }")
//	// sig == "LL ]L# ccc L] ] Lccc ]"
package signature

import (
	"regexp"
)

// Step is a single named substitution of the pipeline.
type Step struct {
	Name        string
	pattern     *regexp.Regexp
	replacement string
}

// Apply replaces every match of the step's pattern in s.
func (st Step) Apply(s string) string {
	return st.pattern.ReplaceAllLiteralString(s, st.replacement)
}

// Pattern returns the regular expression source of the step.
func (st Step) Pattern() string {
	return st.pattern.String()
}

// Replacement returns the literal that replaces each match.
func (st Step) Replacement() string {
	return st.replacement
}

// Pipeline is an ordered sequence of steps.
type Pipeline []Step

// Apply runs every step in order, feeding each the output of the previous one.
func (p Pipeline) Apply(s string) string {
	for _, st := range p {
		s = st.Apply(s)
	}
	return s
}

// Names returns the step names in execution order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, st := range p {
		names[i] = st.Name
	}
	return names
}

// step names, exported so callers can look up individual steps
const (
	StepSpecial   = "special"
	StepDigit     = "digit"
	StepWord      = "word"
	StepIdiom3    = "idiom3"
	StepIdiom2    = "idiom2"
	StepStructure = "structure"
)

var defaultPipeline = Pipeline{
	{Name: StepSpecial, pattern: regexp.MustCompile(`[#@^]`), replacement: "@"},
	{Name: StepDigit, pattern: regexp.MustCompile(`\p{Nd}`), replacement: "#"},
	{Name: StepWord, pattern: regexp.MustCompile(`[\p{L}\p{N}_]`), replacement: "L"},
	{Name: StepIdiom3, pattern: regexp.MustCompile(`===|!==|\(\);`), replacement: "ccc"},
	{Name: StepIdiom2, pattern: regexp.MustCompile(`\(\)|&&|\|\||\+\+|--|[-+!=<>]=|!!|=['"]`), replacement: "cc"},
	{Name: StepStructure, pattern: regexp.MustCompile(`[<>|@/\\{}\[\]()]`), replacement: "]"},
}

// Steps returns a copy of the default pipeline.
func Steps() Pipeline {
	steps := make(Pipeline, len(defaultPipeline))
	copy(steps, defaultPipeline)
	return steps
}

// Lookup returns the default step with the given name.
func Lookup(name string) (Step, bool) {
	for _, st := range defaultPipeline {
		if st.Name == name {
			return st, true
		}
	}
	return Step{}, false
}

// Transform maps raw text to its signature using the default pipeline.
// It is pure and defined for every input, including the empty string.
func Transform(raw string) string {
	return defaultPipeline.Apply(raw)
}
