// Package training loads the labelled corpora the classifier is built from.
//
// A corpus is a UTF-8 text file with one example per line. Line terminators are
// stripped; blank lines are kept as (empty) examples. Three corpora are read: code
// examples (Drop), natural-language examples (Take) and unclear examples (Open).
package training

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/prosesift/internal/classify"
)

// maxLineBytes bounds a single corpus line
const maxLineBytes = 1024 * 1024

// Corpus names a file and the label its lines carry.
type Corpus struct {
	Path  string
	Label classify.Label
}

// Load reads every corpus in order and returns the combined examples.
// A missing or unreadable file fails the whole load, and so does a file without
// lines, reported as classify.ErrConfiguration.
func Load(corpora ...Corpus) ([]classify.Example, error) {
	var examples []classify.Example
	for _, c := range corpora {
		lines, err := ReadLines(c.Path)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: training file %q for %v has no examples",
				classify.ErrConfiguration, c.Path, c.Label)
		}
		slog.Debug("Loaded training corpus", "path", c.Path, "label", c.Label.String(), "lines", len(lines))

		for _, line := range lines {
			examples = append(examples, classify.Example{Text: line, Label: c.Label})
		}
	}
	return examples, nil
}

// ReadLines reads path and returns its lines with '\r' and '\n' removed.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("training file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open training file %q: %w", path, err)
	}
	defer file.Close()

	lines, err := readLines(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read training file %q: %w", path, err)
	}
	return lines, nil
}

// readLines splits r on '\n' and strips any remaining '\r' characters
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.ReplaceAll(scanner.Text(), "\r", ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
