package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinGPA = 2.0
	MaxGPA = 4.0
)

// gpaNumber accepts one or two integer digits so that out-of-range values
// such as "5.00" are captured and then rejected by the range check.
const gpaNumber = `(\d{1,2}[.,]\d{1,3})`

var (
	reGPAIPK    = regexp.MustCompile(`(?i)\bIPK\s*[:\-=]?\s*` + gpaNumber)
	reGPALabel  = regexp.MustCompile(`(?i)\bGPA\s*[:\-=]?\s*` + gpaNumber)
	reGPAIndeks = regexp.MustCompile(`(?i)\bIndeks\s+Prestasi(?:\s+Kumulatif)?\s*[:\-=]?\s*` + gpaNumber)
	reGPARatio  = regexp.MustCompile(`(?i)\b` + gpaNumber + `\s*(?:/|dari|out\s+of)\s*4(?:[.,]0{1,2})?\b`)
)

func gpaCascade(onAnomaly func(string, error)) Cascade[float64] {
	return Cascade[float64]{
		Matchers: []Matcher{
			RegexMatcher{Name: "ipk", Re: reGPAIPK},
			RegexMatcher{Name: "gpa", Re: reGPALabel},
			RegexMatcher{Name: "indeks-prestasi", Re: reGPAIndeks},
			RegexMatcher{Name: "ratio", Re: reGPARatio},
		},
		Parse: func(raw string) (float64, error) {
			return strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		},
		Valid:     func(v float64) bool { return v >= MinGPA && v <= MaxGPA },
		OnAnomaly: onAnomaly,
	}
}

// GPA returns the first in-range grade point average, rounded to 2 decimals.
func (e *Extractor) GPA(text string) *float64 {
	v, ok := e.gpa.First(text)
	if !ok {
		return nil
	}
	v = math.Round(v*100) / 100
	return &v
}
