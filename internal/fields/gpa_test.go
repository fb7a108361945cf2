package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, mutate ...func(*ExtractionConfig)) *Extractor {
	t.Helper()
	cfg := DefaultExtractionConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := New(cfg, nil)
	require.NoError(t, err)
	return e
}

func TestGPA(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want *float64
	}{
		{"ipk label", "IPK: 3.75", ptr(3.75)},
		{"comma decimal", "IPK 3,45 dari 4,00", ptr(3.45)},
		{"gpa label", "GPA: 3.8/4.0", ptr(3.8)},
		{"indeks prestasi", "Indeks Prestasi Kumulatif: 3.21", ptr(3.21)},
		{"ratio only", "lulus dengan nilai 3.62 / 4.00", ptr(3.62)},
		{"out of", "3.9 out of 4", ptr(3.9)},
		{"rounded", "IPK: 3.456", ptr(3.46)},
		{"lower bound", "IPK: 2.00", ptr(2.0)},
		{"upper bound", "GPA 4.00", ptr(4.0)},
		{"above range", "IPK: 5.00", nil},
		{"below range", "IPK: 1.50", nil},
		{"rejected then next matcher", "IPK: 5.00\nGPA: 3.50", ptr(3.5)},
		{"no cue", "Pengalaman organisasi 3 tahun", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.GPA(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestGPA_RangeInvariant(t *testing.T) {
	e := newTestExtractor(t)
	for _, text := range []string{"IPK 0.99", "IPK 1.99", "IPK 4.01", "GPA 9.5", "IPK 12.00"} {
		got := e.GPA(text)
		assert.Nil(t, got, text)
	}
}

func ptr[T any](v T) *T { return &v }
