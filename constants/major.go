package constants

import "strings"

// Synonym maps one lowercase phrase variant to its canonical form.
type Synonym struct {
	Phrase    string
	Canonical string
}

// MajorSynonyms is ordered: degree-anchored lookup walks it top to bottom
// and the first phrase with a nearby degree token wins.
var MajorSynonyms = []Synonym{
	{"information system", "Sistem Informasi"},
	{"information systems", "Sistem Informasi"},
	{"system information", "Sistem Informasi"},
	{"sistem informasi", "Sistem Informasi"},

	{"informatics engineering", "Teknik Informatika"},
	{"teknik informatika", "Teknik Informatika"},
	{"informatika", "Teknik Informatika"},

	{"computer engineering", "Teknik Komputer"},
	{"teknik komputer", "Teknik Komputer"},

	{"dkv", "Desain Komunikasi Visual"},
	{"desain komunikasi visual", "Desain Komunikasi Visual"},
	{"visual communication design", "Desain Komunikasi Visual"},

	{"desain produk", "Desain Produk"},
	{"product design", "Desain Produk"},

	{"manajemen bisnis", "Manajemen Bisnis"},
	{"business management", "Manajemen Bisnis"},

	{"akuntansi", "Akuntansi"},
	{"akuntasi", "Akuntansi"},
	{"accounting", "Akuntansi"},
}

// MajorAbbreviations maps department abbreviations to canonical majors.
var MajorAbbreviations = map[string]string{
	"si":  "Sistem Informasi",
	"ti":  "Teknik Informatika",
	"tk":  "Teknik Komputer",
	"dkv": "Desain Komunikasi Visual",
}

// DegreeLevels are the recognized degree tokens, upper-case.
var DegreeLevels = []string{"S1", "S2", "S3", "D1", "D2", "D3", "D4"}

// DefaultDegree is assumed for a bare major phrase when the policy is enabled.
const DefaultDegree = "S1"

// Canonicalize resolves a free-text phrase against a synonym table.
// An exact phrase or abbreviation wins; otherwise the first table phrase
// contained in the input on word boundaries.
func Canonicalize(input string, table []Synonym, abbrev map[string]string) (string, bool) {
	normalized := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if normalized == "" {
		return "", false
	}

	for _, s := range table {
		if normalized == s.Phrase {
			return s.Canonical, true
		}
	}
	if canon, ok := abbrev[normalized]; ok {
		return canon, true
	}

	for _, s := range table {
		if containsWord(normalized, s.Phrase) {
			return s.Canonical, true
		}
	}
	return "", false
}

// containsWord reports whether phrase occurs in s on word boundaries.
func containsWord(s, phrase string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], phrase)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(phrase)
		if (start == 0 || !isWordByte(s[start-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		i = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
