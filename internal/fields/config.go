package fields

import "github.com/joseph-ayodele/cv-extract/constants"

// MajorStrategy selects the major extraction cascade.
type MajorStrategy string

const (
	// MajorDegreeAnchored searches synonym phrases near degree tokens. System of record.
	MajorDegreeAnchored MajorStrategy = "degree"
	// MajorLabelAnchored captures free text after "Jurusan"/"Program Studi"/"Prodi" labels.
	MajorLabelAnchored MajorStrategy = "label"
)

// ExtractionConfig holds policy flags and normalization tables for the extractors.
// Tables are read-only once an Extractor is built from them.
type ExtractionConfig struct {
	MajorStrategy MajorStrategy
	// DefaultDegree prefixes bare major phrases found without a nearby degree token.
	// Empty keeps them degree-less.
	DefaultDegree string
	// DegreeWindow is the max distance in characters between a degree token and a major phrase.
	DegreeWindow int

	MajorSynonyms      []constants.Synonym
	MajorAbbreviations map[string]string
	DegreeLevels       []string
	MajorStopWords     map[string]struct{}

	SkillSet           []string
	SkillSynonyms      []constants.Synonym
	UpperSkills        map[string]struct{}
	SkillSectionWide   []string
	SkillSectionNarrow []string
	WideWindow         int
	NarrowWindow       int

	MaxNameTokens int
	// TruncateNameAtDelimiter keeps only the first segment of a filename split on ':', '&'
	// or a standalone hyphen.
	TruncateNameAtDelimiter bool
}

// DefaultExtractionConfig returns the built-in tables with the degree-anchored
// major cascade and the S1 default-degree policy.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		MajorStrategy:           MajorDegreeAnchored,
		DefaultDegree:           constants.DefaultDegree,
		DegreeWindow:            40,
		MajorSynonyms:           constants.MajorSynonyms,
		MajorAbbreviations:      constants.MajorAbbreviations,
		DegreeLevels:            constants.DegreeLevels,
		MajorStopWords:          constants.MajorStopWords,
		SkillSet:                constants.SkillSet,
		SkillSynonyms:           constants.SkillSynonyms,
		UpperSkills:             constants.UpperSkills,
		SkillSectionWide:        constants.SkillSectionWide,
		SkillSectionNarrow:      constants.SkillSectionNarrow,
		WideWindow:              600,
		NarrowWindow:            400,
		MaxNameTokens:           6,
		TruncateNameAtDelimiter: true,
	}
}

func (c *ExtractionConfig) applyDefaults() {
	def := DefaultExtractionConfig()
	if c.MajorStrategy == "" {
		c.MajorStrategy = def.MajorStrategy
	}
	if c.DegreeWindow <= 0 {
		c.DegreeWindow = def.DegreeWindow
	}
	if c.MajorSynonyms == nil {
		c.MajorSynonyms = def.MajorSynonyms
	}
	if c.MajorAbbreviations == nil {
		c.MajorAbbreviations = def.MajorAbbreviations
	}
	if len(c.DegreeLevels) == 0 {
		c.DegreeLevels = def.DegreeLevels
	}
	if c.MajorStopWords == nil {
		c.MajorStopWords = def.MajorStopWords
	}
	if c.SkillSet == nil {
		c.SkillSet = def.SkillSet
	}
	if c.SkillSynonyms == nil {
		c.SkillSynonyms = def.SkillSynonyms
	}
	if c.UpperSkills == nil {
		c.UpperSkills = def.UpperSkills
	}
	if c.SkillSectionWide == nil {
		c.SkillSectionWide = def.SkillSectionWide
	}
	if c.SkillSectionNarrow == nil {
		c.SkillSectionNarrow = def.SkillSectionNarrow
	}
	if c.WideWindow <= 0 {
		c.WideWindow = def.WideWindow
	}
	if c.NarrowWindow <= 0 {
		c.NarrowWindow = def.NarrowWindow
	}
	if c.MaxNameTokens <= 0 {
		c.MaxNameTokens = def.MaxNameTokens
	}
}
