package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemester(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want *int
	}{
		{"label", "Semester 5", ptr(5)},
		{"label with colon", "Semester: 7", ptr(7)},
		{"abbreviated", "Sem. 3", ptr(3)},
		{"trailing", "mahasiswa 6 semester", ptr(6)},
		{"ordinal", "currently in 5th semester", ptr(5)},
		{"upper bound", "semester 12", ptr(12)},
		{"out of range", "semester 15", nil},
		{"zero", "semester 0", nil},
		{"three digits", "semester 123", nil},
		{"no cue", "IPK 3.50", nil},
		{"page total on previous line", "Page 1 of 2\nsemester: 14\n3 sem", ptr(3)},
		{"label value on next line", "Semester\n2023", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Semester(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
