package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"
)

type TextNormalizer interface {
	Normalize(text string) string
}

type textNormalizer struct {
	lemmatizer *golem.Lemmatizer
	nonLetters *regexp.Regexp
}

func NewTextNormalizer() (TextNormalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemma dictionary: %w", err)
	}

	return &textNormalizer{
		lemmatizer: lemmatizer,
		nonLetters: regexp.MustCompile(`[^a-zA-Z\s]`),
	}, nil
}

// Normalize implements TextNormalizer. Lowercases, strips everything outside
// the Latin alphabet and whitespace, drops English stopwords and reduces each
// remaining token to its dictionary base form. Note the character stripping
// also removes digits, so version-bearing skills degrade ("c++" becomes "c").
func (n *textNormalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = n.nonLetters.ReplaceAllString(text, "")
	text = stopwords.CleanString(text, "en", false)

	tokens := strings.Fields(text)
	for i, token := range tokens {
		tokens[i] = n.lemmatizer.Lemma(token)
	}

	return strings.Join(tokens, " ")
}
