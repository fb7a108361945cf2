package fields

import (
	"fmt"
	"regexp"

	"github.com/joseph-ayodele/cv-extract/internal/common"
)

// Matcher yields raw candidate captures in document order.
type Matcher interface {
	Candidates(text string) []string
}

// MatcherFunc adapts a plain function to Matcher.
type MatcherFunc func(text string) []string

func (f MatcherFunc) Candidates(text string) []string { return f(text) }

// RegexMatcher returns capture group 1 of every non-overlapping match.
type RegexMatcher struct {
	Name string
	Re   *regexp.Regexp
}

func (m RegexMatcher) Candidates(text string) []string {
	var out []string
	for _, sm := range m.Re.FindAllStringSubmatch(text, -1) {
		if len(sm) > 1 {
			out = append(out, sm[1])
		}
	}
	return out
}

// Cascade runs matchers in priority order and accepts the first candidate
// that parses and passes Valid. Parse failures are field-level anomalies:
// reported through OnAnomaly, never propagated.
type Cascade[T any] struct {
	Matchers  []Matcher
	Parse     func(raw string) (T, error)
	Valid     func(v T) bool
	OnAnomaly func(raw string, err error)
}

// First returns the first valid value, or false when every candidate was rejected.
func (c Cascade[T]) First(text string) (T, bool) {
	var zero T
	for _, m := range c.Matchers {
		for _, raw := range m.Candidates(text) {
			v, err := c.Parse(raw)
			if err != nil {
				if c.OnAnomaly != nil {
					c.OnAnomaly(raw, fmt.Errorf("%w: %v", common.ErrFieldParse, err))
				}
				continue
			}
			if c.Valid != nil && !c.Valid(v) {
				continue
			}
			return v, true
		}
	}
	return zero, false
}
