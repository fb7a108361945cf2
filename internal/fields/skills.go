package fields

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph-ayodele/cv-extract/constants"
)

type skillMatcher struct {
	sections []*regexp.Regexp
	synonyms []constants.Synonym // longest phrase first
	keywords []string
	upper    map[string]struct{}
}

func newSkillMatcher(cfg ExtractionConfig) (*skillMatcher, error) {
	m := &skillMatcher{upper: cfg.UpperSkills}

	groups := []struct {
		headers []string
		window  int
	}{
		{cfg.SkillSectionWide, cfg.WideWindow},
		{cfg.SkillSectionNarrow, cfg.NarrowWindow},
	}
	for _, g := range groups {
		if len(g.headers) == 0 {
			continue
		}
		pattern := fmt.Sprintf(`(?is)\b(?:%s)[\s:]*(.{0,%d})`, strings.Join(g.headers, "|"), g.window)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile skill section: %w", err)
		}
		m.sections = append(m.sections, re)
	}

	m.synonyms = append([]constants.Synonym(nil), cfg.SkillSynonyms...)
	for i := range m.synonyms {
		m.synonyms[i].Phrase = strings.ToLower(m.synonyms[i].Phrase)
		m.synonyms[i].Canonical = strings.ToLower(m.synonyms[i].Canonical)
	}
	sort.SliceStable(m.synonyms, func(i, j int) bool {
		return len(m.synonyms[i].Phrase) > len(m.synonyms[j].Phrase)
	})

	for _, kw := range cfg.SkillSet {
		m.keywords = append(m.keywords, strings.ToLower(kw))
	}
	return m, nil
}

// scanZone returns the lowercased text under recognized skill headers,
// or the whole lowercased document when no header is present.
func (m *skillMatcher) scanZone(text string) string {
	var zone strings.Builder
	for _, re := range m.sections {
		for _, sm := range re.FindAllStringSubmatch(text, -1) {
			zone.WriteString(" ")
			zone.WriteString(sm[1])
		}
	}
	if strings.TrimSpace(zone.String()) == "" {
		return strings.ToLower(text)
	}
	return strings.ToLower(zone.String())
}

func (m *skillMatcher) match(text string) []string {
	scan := m.scanZone(text)
	for _, s := range m.synonyms {
		scan = replaceBounded(scan, s.Phrase, s.Canonical)
	}

	seen := make(map[string]struct{})
	var found []string
	for _, kw := range m.keywords {
		if !containsBounded(scan, kw) {
			continue
		}
		name := m.render(kw)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		found = append(found, name)
	}
	sort.Strings(found)
	return found
}

func (m *skillMatcher) render(kw string) string {
	if _, ok := m.upper[kw]; ok {
		return strings.ToUpper(kw)
	}
	return titleCase(kw)
}

// Skills returns the sorted, deduplicated canonical skill names found in text.
func (e *Extractor) Skills(text string) []string {
	return e.skills.match(text)
}

// titleCase uses a fresh Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// boundedAt reports whether s[start:end] is not glued to letters or digits on either side.
func boundedAt(s string, start, end int) bool {
	return (start == 0 || !isAlnum(s[start-1])) && (end == len(s) || !isAlnum(s[end]))
}

// containsBounded is substring membership that ignores hits inside longer words,
// so "java" does not match "javascript" and "git" does not match "github".
func containsBounded(s, kw string) bool {
	for i := 0; i <= len(s); {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		start := i + j
		if boundedAt(s, start, start+len(kw)) {
			return true
		}
		i = start + 1
	}
	return false
}

func replaceBounded(s, old, repl string) string {
	if old == "" || !strings.Contains(s, old) {
		return s
	}
	var b strings.Builder
	i := 0
	for {
		j := strings.Index(s[i:], old)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(old)
		if boundedAt(s, start, end) {
			b.WriteString(s[i:start])
			b.WriteString(repl)
		} else {
			b.WriteString(s[i:end])
		}
		i = end
	}
	b.WriteString(s[i:])
	return b.String()
}
