package fields

import (
	"regexp"
	"strconv"
)

const (
	MinSemester = 1
	MaxSemester = 12
)

var (
	reSemesterLabel = regexp.MustCompile(`(?i)\bsemester[ \t]*[:\-]?[ \t]*(\d{1,2})\b`)
	reSemLabel      = regexp.MustCompile(`(?i)\bsem[ \t]*[:\-.]?[ \t]*(\d{1,2})\b`)
	// "5 semester", "5th semester", "5 th semester", "7 tahun sem"; never across lines
	reSemesterTrailing = regexp.MustCompile(`(?i)\b(\d{1,2})(?:[ \t]*(?:st|nd|rd|th|tahun)\b)?[ \t]*(?:semester|sem)\b`)
)

func semesterCascade(onAnomaly func(string, error)) Cascade[int] {
	return Cascade[int]{
		Matchers: []Matcher{
			RegexMatcher{Name: "semester", Re: reSemesterLabel},
			RegexMatcher{Name: "sem", Re: reSemLabel},
			RegexMatcher{Name: "trailing", Re: reSemesterTrailing},
		},
		Parse:     strconv.Atoi,
		Valid:     func(v int) bool { return v >= MinSemester && v <= MaxSemester },
		OnAnomaly: onAnomaly,
	}
}

// Semester returns the first in-range semester number.
func (e *Extractor) Semester(text string) *int {
	v, ok := e.semester.First(text)
	if !ok {
		return nil
	}
	return &v
}
