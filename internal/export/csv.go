package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// CSV renders the report with a header row.
func (s *Service) CSV(report *entity.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(entity.Columns); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, rec := range report.Records {
		if err := w.Write(Strings(rec)); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", rec.Index, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}
