package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/constants"
)

func TestStatus_StringAndParse(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"success", Success(), "Success"},
		{"partial", Partial(constants.FieldGPA, constants.FieldMajor), "Partial - Missing: GPA, Jurusan"},
		{"partial one", Partial(constants.FieldMajor), "Partial - Missing: Jurusan"},
		{"failed", Failed(constants.ReasonNoText), "Failed - No text extracted"},
		{"error", Errored("file is encrypted"), "Error: file is encrypted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
			got, err := ParseStatus(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got)
		})
	}

	_, err := ParseStatus("Pending")
	assert.Error(t, err)
}

func TestPartial_CopiesMissing(t *testing.T) {
	missing := []string{constants.FieldGPA}
	s := Partial(missing...)
	missing[0] = "x"
	assert.Equal(t, []string{constants.FieldGPA}, s.Missing)
}

func TestNewRecord(t *testing.T) {
	gpa := 3.5
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	skills := []string{"Python", "Excel", "SQL"}
	doc := Document{Index: 7, Path: "cv/x.pdf", Name: "x.pdf"}

	rec := NewRecord(doc, "X", Fields{GPA: &gpa, Skills: skills}, Success(), at)
	skills[0] = "mutated"

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, 7, rec.Index)
	assert.Equal(t, "cv/x.pdf", rec.SourcePath)
	assert.Equal(t, 3, rec.SkillCount)
	assert.Equal(t, "Python, Excel, SQL", rec.SkillsString())
	assert.Equal(t, "2024-01-02 03:04:05", rec.Timestamp())

	empty := NewRecord(doc, "X", Fields{}, Failed(constants.ReasonNoText), time.Time{})
	assert.Equal(t, 0, empty.SkillCount)
	assert.Equal(t, "", empty.SkillsString())
	assert.Equal(t, "", empty.Timestamp())
}

func TestReport_Summary(t *testing.T) {
	doc := Document{}
	now := time.Now()
	r := &Report{Records: []ExtractionRecord{
		NewRecord(doc, "a", Fields{}, Success(), now),
		NewRecord(doc, "b", Fields{}, Success(), now),
		NewRecord(doc, "c", Fields{}, Partial(constants.FieldGPA), now),
		NewRecord(doc, "d", Fields{}, Failed(constants.ReasonNoText), now),
		NewRecord(doc, "e", Fields{}, Errored("boom"), now),
	}}
	assert.Equal(t, Summary{Total: 5, Success: 2, Partial: 1, Failed: 1, Errors: 1}, r.Summary())
	assert.False(t, r.Empty())
	assert.True(t, (&Report{}).Empty())
}
