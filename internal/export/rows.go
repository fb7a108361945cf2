package export

import (
	"strconv"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// Cells returns one record's values in entity.Columns order. Absent fields are nil.
func Cells(r entity.ExtractionRecord) []any {
	cells := []any{r.Name, nil, nil, nil, r.SkillsString(), r.SkillCount, r.Status.String(), r.Timestamp()}
	if r.GPA != nil {
		cells[1] = *r.GPA
	}
	if r.Major != nil {
		cells[2] = *r.Major
	}
	if r.Semester != nil {
		cells[3] = *r.Semester
	}
	return cells
}

// Strings renders Cells as text; absent fields become empty strings.
func Strings(r entity.ExtractionRecord) []string {
	out := make([]string, 0, len(entity.Columns))
	for _, c := range Cells(r) {
		switch v := c.(type) {
		case nil:
			out = append(out, "")
		case string:
			out = append(out, v)
		case int:
			out = append(out, strconv.Itoa(v))
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', 2, 64))
		}
	}
	return out
}
