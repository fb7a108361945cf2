package fields

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

const segmentMark = "|"

var (
	reOrdinalPrefix    = regexp.MustCompile(`^\s*\d+\s*\.\s*`)
	reStandaloneHyphen = regexp.MustCompile(`\s+[-–—]+\s+`)
	reNameDelims       = regexp.MustCompile(`[:&]`)
	reNameSeparators   = regexp.MustCompile(`[_\-.]`)
	reCVMarker         = regexp.MustCompile(`(?i)\bcurriculum\s+vitae\b|\bcv\b`)
	reParenNumber      = regexp.MustCompile(`\(\s*\d+\s*\)`)
	reDigits           = regexp.MustCompile(`\d+`)
	reSpaces           = regexp.MustCompile(`\s+`)
)

// Name derives a candidate name from a document filename. Body text is never
// consulted: shared résumé templates would otherwise leak one name into many records.
func (e *Extractor) Name(filename string) string {
	return ExtractName(filename, e.cfg.MaxNameTokens, e.cfg.TruncateNameAtDelimiter)
}

// ExtractName cleans a filename into at most maxTokens capitalized tokens.
func ExtractName(filename string, maxTokens int, truncate bool) string {
	base := filepath.Base(filename)
	s := base
	if ext := filepath.Ext(base); !strings.ContainsAny(ext, " \t") {
		s = strings.TrimSuffix(base, ext)
	}

	s = reOrdinalPrefix.ReplaceAllString(s, "")
	// mark delimiters before separators are flattened, so a standalone hyphen
	// stays distinguishable from one inside a double-barrelled name
	s = reStandaloneHyphen.ReplaceAllString(s, segmentMark)
	s = reNameDelims.ReplaceAllString(s, segmentMark)
	s = reNameSeparators.ReplaceAllString(s, " ")
	s = reCVMarker.ReplaceAllString(s, " ")

	if truncate {
		s = firstLetteredSegment(s)
	} else {
		s = strings.ReplaceAll(s, segmentMark, " ")
	}

	s = reParenNumber.ReplaceAllString(s, " ")
	s = reDigits.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))

	toks := strings.Fields(s)
	if len(toks) == 0 {
		return ""
	}
	if maxTokens > 0 && len(toks) > maxTokens {
		toks = toks[:maxTokens]
	}
	for i, t := range toks {
		toks[i] = titleCase(t)
	}
	return strings.Join(toks, " ")
}

// firstLetteredSegment keeps the first delimiter-separated segment that still
// contains a letter; "CV - Jane Roe" has an empty first segment once the marker is gone.
func firstLetteredSegment(s string) string {
	for _, seg := range strings.Split(s, segmentMark) {
		if strings.IndexFunc(seg, unicode.IsLetter) >= 0 {
			return seg
		}
	}
	return ""
}
