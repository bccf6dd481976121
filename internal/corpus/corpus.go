// Package corpus loads and tokenizes the tagged sense corpus.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/verte-zerg/sensearff/internal/model"
)

// Separator delimits samples in the corpus text.
const Separator = "$$"

// ErrCorpusNotFound indicates the corpus file does not exist.
var ErrCorpusNotFound = errors.New("corpus: file not found")

// Tokens are separated by runs of whitespace and square brackets.
var tokenSeparator = regexp.MustCompile(`[\n\t\s\[\]]+`)

// Load reads the whole corpus file.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %w", ErrCorpusNotFound, path, err)
		}
		return "", fmt.Errorf("read corpus: %w", err)
	}
	return string(data), nil
}

// Segment splits corpus text into trimmed raw samples.
func Segment(text string) []string {
	parts := strings.Split(text, Separator)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// ParseSample tokenizes one raw sample. Tokens without a '/' are dropped.
func ParseSample(raw string) model.Sample {
	var words model.Sample
	for _, token := range tokenSeparator.Split(raw, -1) {
		if w, ok := ParseWord(token); ok {
			words = append(words, w)
		}
	}
	return words
}

// ParseWord splits a token on its first '/' into text and category.
func ParseWord(token string) (model.Word, bool) {
	text, cat, ok := strings.Cut(token, "/")
	if !ok {
		return model.Word{}, false
	}
	return model.Word{Text: text, Cat: cat}, true
}

// Parse segments and tokenizes the corpus, dropping samples without words.
func Parse(text string) []model.Sample {
	var samples []model.Sample
	for _, raw := range Segment(text) {
		sample := ParseSample(raw)
		if len(sample) == 0 {
			continue
		}
		samples = append(samples, sample)
	}
	return samples
}
