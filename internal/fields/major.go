package fields

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/cv-extract/constants"
)

type phraseRule struct {
	phrase    string
	canonical string
	before    *regexp.Regexp // degree ... phrase
	after     *regexp.Regexp // phrase ... degree
	bare      *regexp.Regexp
}

type majorExtractor struct {
	strategy      MajorStrategy
	defaultDegree string
	rules         []phraseRule
	abbrev        *regexp.Regexp
	abbrevMap     map[string]string
	label         *regexp.Regexp
	degreeToken   *regexp.Regexp
	stopWords     map[string]struct{}
	synonyms      []constants.Synonym
}

var reMajorLabel = regexp.MustCompile(`(?im)\b(?:jurusan|program\s+studi|prodi|major)\b[ \t]*[:\-]?[ \t]*([^\n]*)`)

func newMajorExtractor(cfg ExtractionConfig) (*majorExtractor, error) {
	degrees := make([]string, 0, len(cfg.DegreeLevels))
	for _, d := range cfg.DegreeLevels {
		degrees = append(degrees, regexp.QuoteMeta(strings.ToUpper(d)))
	}
	degreeAlt := `(` + strings.Join(degrees, "|") + `)`
	window := fmt.Sprintf(`.{0,%d}`, cfg.DegreeWindow)

	m := &majorExtractor{
		strategy:      cfg.MajorStrategy,
		defaultDegree: strings.ToUpper(strings.TrimSpace(cfg.DefaultDegree)),
		abbrevMap:     cfg.MajorAbbreviations,
		label:         reMajorLabel,
		stopWords:     cfg.MajorStopWords,
		synonyms:      cfg.MajorSynonyms,
	}

	var err error
	if m.degreeToken, err = regexp.Compile(`(?i)^` + degreeAlt + `$`); err != nil {
		return nil, fmt.Errorf("compile degree token: %w", err)
	}

	for _, s := range cfg.MajorSynonyms {
		p := `\b` + regexp.QuoteMeta(strings.ToLower(s.Phrase)) + `\b`
		r := phraseRule{phrase: s.Phrase, canonical: s.Canonical}
		if r.before, err = regexp.Compile(`(?i)\b` + degreeAlt + `\b` + window + p); err != nil {
			return nil, fmt.Errorf("compile major rule %q: %w", s.Phrase, err)
		}
		if r.after, err = regexp.Compile(`(?i)` + p + window + `\b` + degreeAlt + `\b`); err != nil {
			return nil, fmt.Errorf("compile major rule %q: %w", s.Phrase, err)
		}
		if r.bare, err = regexp.Compile(`(?i)` + p); err != nil {
			return nil, fmt.Errorf("compile major rule %q: %w", s.Phrase, err)
		}
		m.rules = append(m.rules, r)
	}

	if len(cfg.MajorAbbreviations) > 0 {
		keys := make([]string, 0, len(cfg.MajorAbbreviations))
		for k := range cfg.MajorAbbreviations {
			keys = append(keys, regexp.QuoteMeta(k))
		}
		// longest first so "dkv" is not shadowed by a shorter key
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) > len(keys[j])
			}
			return keys[i] < keys[j]
		})
		if m.abbrev, err = regexp.Compile(`(?i)\b` + degreeAlt + `\s+(` + strings.Join(keys, "|") + `)\b`); err != nil {
			return nil, fmt.Errorf("compile abbreviation rule: %w", err)
		}
	}
	return m, nil
}

func (m *majorExtractor) extract(text string) (string, bool) {
	if m.strategy == MajorLabelAnchored {
		return m.labelAnchored(text)
	}
	return m.degreeAnchored(text)
}

func (m *majorExtractor) degreeAnchored(text string) (string, bool) {
	// (a) degree token within the window before or after a synonym phrase
	for _, r := range m.rules {
		if sm := r.before.FindStringSubmatch(text); sm != nil {
			return strings.ToUpper(sm[1]) + " " + r.canonical, true
		}
		if sm := r.after.FindStringSubmatch(text); sm != nil {
			return strings.ToUpper(sm[1]) + " " + r.canonical, true
		}
	}

	// (b) degree token directly followed by a department abbreviation
	if m.abbrev != nil {
		if sm := m.abbrev.FindStringSubmatch(text); sm != nil {
			if canon, ok := m.abbrevMap[strings.ToLower(sm[2])]; ok {
				return strings.ToUpper(sm[1]) + " " + canon, true
			}
		}
	}

	// (c) bare phrase
	for _, r := range m.rules {
		if r.bare.MatchString(text) {
			if m.defaultDegree != "" {
				return m.defaultDegree + " " + r.canonical, true
			}
			return r.canonical, true
		}
	}
	return "", false
}

func (m *majorExtractor) labelAnchored(text string) (string, bool) {
	for _, sm := range m.label.FindAllStringSubmatch(text, -1) {
		degree, phrase := m.truncateCapture(sm[1])
		if phrase == "" {
			continue
		}
		name, ok := constants.Canonicalize(phrase, m.synonyms, m.abbrevMap)
		if !ok {
			name = titleCase(phrase)
		}
		if degree != "" {
			return degree + " " + name, true
		}
		return name, true
	}
	return "", false
}

// truncateCapture cuts a label capture at the first separator, stop word or
// numeric token. A leading degree token is returned separately.
func (m *majorExtractor) truncateCapture(capture string) (degree, phrase string) {
	if i := strings.IndexAny(capture, ",;|()/"); i >= 0 {
		capture = capture[:i]
	}

	var kept []string
	for i, tok := range strings.Fields(capture) {
		clean := strings.Trim(tok, ".:-–—'\"")
		if clean == "" {
			continue
		}
		if i == 0 && m.degreeToken.MatchString(clean) {
			degree = strings.ToUpper(clean)
			continue
		}
		lower := strings.ToLower(clean)
		if _, stop := m.stopWords[lower]; stop {
			break
		}
		if strings.ContainsAny(clean, "0123456789") {
			break
		}
		kept = append(kept, clean)
	}
	return degree, strings.Join(kept, " ")
}

// Major returns the canonical major for text, or nil when no lexical cue is found.
func (e *Extractor) Major(text string) *string {
	v, ok := e.major.extract(text)
	if !ok {
		return nil
	}
	return &v
}
