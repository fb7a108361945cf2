package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

type jsonRow struct {
	Name       string   `json:"name"`
	GPA        *float64 `json:"gpa"`
	Major      *string  `json:"major"`
	Semester   *int     `json:"semester"`
	Skills     string   `json:"skills"`
	SkillCount int      `json:"skill_count"`
	Status     string   `json:"status"`
	Timestamp  string   `json:"timestamp"`
}

type jsonReport struct {
	RunID      string         `json:"run_id"`
	Source     string         `json:"source"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Summary    entity.Summary `json:"summary"`
	Rows       []jsonRow      `json:"rows"`
}

// ReportJSONSchema describes the JSON report; rows carry the same
// columns and ranges as the tabular formats.
func ReportJSONSchema() map[string]any {
	row := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name", "gpa", "major", "semester", "skills", "skill_count", "status", "timestamp"},
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"gpa":         map[string]any{"type": []string{"number", "null"}, "minimum": 2.0, "maximum": 4.0},
			"major":       map[string]any{"type": []string{"string", "null"}},
			"semester":    map[string]any{"type": []string{"integer", "null"}, "minimum": 1, "maximum": 12},
			"skills":      map[string]any{"type": "string"},
			"skill_count": map[string]any{"type": "integer", "minimum": 0},
			"status":      map[string]any{"type": "string", "pattern": `^(Success|Partial - Missing: .+|Failed - [\s\S]+|Error: [\s\S]*)$`},
			"timestamp":   map[string]any{"type": "string", "pattern": `^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})?$`},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"run_id", "source", "summary", "rows"},
		"properties": map[string]any{
			"run_id":  map[string]any{"type": "string"},
			"source":  map[string]any{"type": "string"},
			"summary": map[string]any{"type": "object"},
			"rows":    map[string]any{"type": "array", "items": row},
		},
	}
}

// JSON renders the report and validates it against ReportJSONSchema.
func (s *Service) JSON(report *entity.Report) ([]byte, error) {
	doc := jsonReport{
		RunID:      report.RunID.String(),
		Source:     report.Source,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Summary:    report.Summary(),
		Rows:       make([]jsonRow, 0, len(report.Records)),
	}
	for _, r := range report.Records {
		doc.Rows = append(doc.Rows, jsonRow{
			Name:       r.Name,
			GPA:        r.GPA,
			Major:      r.Major,
			Semester:   r.Semester,
			Skills:     r.SkillsString(),
			SkillCount: r.SkillCount,
			Status:     r.Status.String(),
			Timestamp:  r.Timestamp(),
		})
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := ValidateJSONAgainstSchema(ReportJSONSchema(), b); err != nil {
		return nil, err
	}
	return b, nil
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("report.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
