package fields

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/internal/common"
)

const sampleCV = `CURRICULUM VITAE
Pendidikan
S1 Sistem Informasi - Universitas Bina Nusantara
IPK: 3,67 / 4,00
Semester 7

Keahlian
Python, Laravel, MySQL, Figma, Git
`

func TestExtract(t *testing.T) {
	e := newTestExtractor(t)
	f := e.Extract(sampleCV)

	require.NotNil(t, f.GPA)
	assert.InDelta(t, 3.67, *f.GPA, 1e-9)
	require.NotNil(t, f.Major)
	assert.Equal(t, "S1 Sistem Informasi", *f.Major)
	require.NotNil(t, f.Semester)
	assert.Equal(t, 7, *f.Semester)
	assert.Equal(t, []string{"Figma", "Git", "Laravel", "Mysql", "Python"}, f.Skills)
}

func TestExtract_Empty(t *testing.T) {
	e := newTestExtractor(t)
	f := e.Extract("")
	assert.Nil(t, f.GPA)
	assert.Nil(t, f.Major)
	assert.Nil(t, f.Semester)
	assert.Empty(t, f.Skills)
}

func TestExtract_ConcurrentUse(t *testing.T) {
	e := newTestExtractor(t)
	want := e.Extract(sampleCV)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, e.Extract(sampleCV))
		}()
	}
	wg.Wait()
}

func TestCascade_FirstValidWins(t *testing.T) {
	var anomalies []error
	c := Cascade[int]{
		Matchers: []Matcher{
			MatcherFunc(func(string) []string { return []string{"x", "99"} }),
			MatcherFunc(func(string) []string { return []string{"4"} }),
		},
		Parse: strconv.Atoi,
		Valid: func(v int) bool { return v < 10 },
		OnAnomaly: func(raw string, err error) {
			anomalies = append(anomalies, err)
		},
	}

	v, ok := c.First("ignored")
	require.True(t, ok)
	assert.Equal(t, 4, v)
	require.Len(t, anomalies, 1)
	assert.True(t, errors.Is(anomalies[0], common.ErrFieldParse))
}

func TestCascade_NoCandidate(t *testing.T) {
	c := Cascade[int]{Parse: strconv.Atoi}
	v, ok := c.First("text")
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestNew_AppliesDefaults(t *testing.T) {
	e, err := New(ExtractionConfig{}, nil)
	require.NoError(t, err)

	cfg := e.Config()
	assert.Equal(t, MajorDegreeAnchored, cfg.MajorStrategy)
	assert.Equal(t, 40, cfg.DegreeWindow)
	assert.Equal(t, 6, cfg.MaxNameTokens)
	assert.Empty(t, cfg.DefaultDegree)
	assert.NotEmpty(t, cfg.SkillSet)
}
