// Package textnorm collapses case and plural variants of free-text terms
// (tags, option names, allergen names) to one canonical form used for
// storage, matching, and suggestion dedup.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/gertd/go-pluralize"
)

var markup = regexp.MustCompile(`<[^>]*>`)

// Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	plural    *pluralize.Client
	overrides map[string]string
}

// New builds a Normalizer. The overrides table corrects words the
// singularizer truncates (e.g. "molasses" -> "molass"); keys are the wrong
// singular, values the canonical spelling.
func New(overrides map[string]string) *Normalizer {
	table := make(map[string]string, len(overrides))
	for k, v := range overrides {
		table[k] = v
	}
	return &Normalizer{
		plural:    pluralize.NewClient(),
		overrides: table,
	}
}

// Canonicalize strips markup, lowercases, trims, singularizes the trailing
// word, and applies the override table. It is idempotent. Trimming must
// happen before singularization: trailing whitespace hides the plural from
// the singularizer.
func (n *Normalizer) Canonicalize(s string) string {
	s = markup.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = strings.TrimSpace(s)
	s = n.plural.Singular(s)
	if fixed, ok := n.overrides[s]; ok {
		s = fixed
	}
	return s
}

// StripTags removes markup without any other normalization. Raw display
// names keep their case but never carry HTML.
func StripTags(s string) string {
	return strings.TrimSpace(markup.ReplaceAllString(s, ""))
}
