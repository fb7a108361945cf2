package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// ErrRunNotFound is returned when a run ID has no stored header.
var ErrRunNotFound = errors.New("run not found")

// ResultRepository persists extraction runs and their records.
type ResultRepository interface {
	SaveRun(ctx context.Context, report *entity.Report) error
	AppendRecord(ctx context.Context, runID uuid.UUID, rec entity.ExtractionRecord) error
	GetRun(ctx context.Context, runID uuid.UUID) (*entity.Report, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// RunSummary is a stored run header with its outcome tallies.
type RunSummary struct {
	ID         uuid.UUID
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	entity.Summary
}

type resultRepository struct {
	db     *DB
	logger *slog.Logger
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *DB, logger *slog.Logger) ResultRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &resultRepository{db: db, logger: logger}
}

const upsertRunSQL = `INSERT INTO extraction_runs (id, source, started_at, finished_at, total, success, partial, failed, errors)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	finished_at = excluded.finished_at,
	total = excluded.total,
	success = excluded.success,
	partial = excluded.partial,
	failed = excluded.failed,
	errors = excluded.errors`

const insertRecordSQL = `INSERT INTO extraction_records
	(id, run_id, idx, source_path, file_name, name, gpa, major, semester, skills, skill_count, status, extracted_at, text_method, pages)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`

// SaveRun stores the run header and all records in one transaction.
func (r *resultRepository) SaveRun(ctx context.Context, report *entity.Report) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", common.ErrInvalidInput)
	}
	if report.RunID == uuid.Nil {
		report.RunID = uuid.New()
	}

	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return r.wrap("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.upsertRun(ctx, tx, report.RunID, report.Source, report.StartedAt, report.FinishedAt, report.Summary()); err != nil {
		return r.wrap("save run", err)
	}
	for _, rec := range report.Records {
		if err := r.insertRecord(ctx, tx, report.RunID, rec); err != nil {
			return r.wrap("save record", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return r.wrap("commit", err)
	}

	r.logger.Info("repository.run.saved", "run_id", report.RunID, "records", len(report.Records))
	return nil
}

// AppendRecord adds one record to an existing run and refreshes its tallies.
func (r *resultRepository) AppendRecord(ctx context.Context, runID uuid.UUID, rec entity.ExtractionRecord) error {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return r.wrap("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := r.insertRecord(ctx, tx, runID, rec); err != nil {
		return r.wrap("append record", err)
	}

	col := tallyColumn(rec.Status)
	q := r.db.rebind(`UPDATE extraction_runs SET total = total + 1, ` + col + ` = ` + col + ` + 1, finished_at = ? WHERE id = ?`)
	res, err := tx.ExecContext(ctx, q, formatTime(rec.ExtractedAt), runID.String())
	if err != nil {
		return r.wrap("update tallies", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err := tx.Commit(); err != nil {
		return r.wrap("commit", err)
	}

	r.logger.Debug("repository.record.appended", "run_id", runID, "file", rec.FileName, "status", rec.Status.String())
	return nil
}

// GetRun loads a run header and its records in index order.
func (r *resultRepository) GetRun(ctx context.Context, runID uuid.UUID) (*entity.Report, error) {
	row := r.db.SQL.QueryRowContext(ctx,
		r.db.rebind(`SELECT source, started_at, finished_at FROM extraction_runs WHERE id = ?`),
		runID.String())

	var source, started, finished string
	if err := row.Scan(&source, &started, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, r.wrap("get run", err)
	}

	report := &entity.Report{RunID: runID, Source: source}
	report.StartedAt, _ = parseTime(started)
	report.FinishedAt, _ = parseTime(finished)

	rows, err := r.db.SQL.QueryContext(ctx, r.db.rebind(`SELECT
		id, idx, source_path, file_name, name, gpa, major, semester, skills, skill_count, status, extracted_at, text_method, pages
		FROM extraction_records WHERE run_id = ? ORDER BY idx, extracted_at`), runID.String())
	if err != nil {
		return nil, r.wrap("list records", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, r.wrap("scan record", err)
		}
		report.Records = append(report.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrap("list records", err)
	}
	return report, nil
}

// ListRuns returns the most recent runs first.
func (r *resultRepository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.SQL.QueryContext(ctx, r.db.rebind(`SELECT
		id, source, started_at, finished_at, total, success, partial, failed, errors
		FROM extraction_runs ORDER BY started_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, r.wrap("list runs", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			id, started, finished string
			s                     RunSummary
		)
		if err := rows.Scan(&id, &s.Source, &started, &finished,
			&s.Total, &s.Success, &s.Partial, &s.Failed, &s.Errors); err != nil {
			return nil, r.wrap("scan run", err)
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, r.wrap("scan run", err)
		}
		s.StartedAt, _ = parseTime(started)
		s.FinishedAt, _ = parseTime(finished)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *resultRepository) upsertRun(ctx context.Context, tx *sql.Tx, id uuid.UUID, source string, started, finished time.Time, s entity.Summary) error {
	_, err := tx.ExecContext(ctx, r.db.rebind(upsertRunSQL),
		id.String(), source, formatTime(started), formatTime(finished),
		s.Total, s.Success, s.Partial, s.Failed, s.Errors)
	return err
}

func (r *resultRepository) insertRecord(ctx context.Context, tx *sql.Tx, runID uuid.UUID, rec entity.ExtractionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	skills, err := json.Marshal(nonNil(rec.Skills))
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, r.db.rebind(insertRecordSQL),
		rec.ID.String(), runID.String(), rec.Index, rec.SourcePath, rec.FileName, rec.Name,
		nullFloat(rec.GPA), nullString(rec.Major), nullInt(rec.Semester),
		string(skills), rec.SkillCount, rec.Status.String(), formatTime(rec.ExtractedAt),
		rec.TextMethod, rec.Pages)
	return err
}

func (r *resultRepository) wrap(op string, err error) error {
	r.logger.Error("repository.failed", "op", op, "error", err)
	return common.NewAppError(common.CodeRepository, op, fmt.Errorf("%w: %w", common.ErrDatabase, err))
}

func scanRecord(rows *sql.Rows) (entity.ExtractionRecord, error) {
	var (
		rec                        entity.ExtractionRecord
		id, skills, status, atText string
		gpa                        sql.NullFloat64
		major                      sql.NullString
		semester                   sql.NullInt64
	)
	if err := rows.Scan(&id, &rec.Index, &rec.SourcePath, &rec.FileName, &rec.Name,
		&gpa, &major, &semester, &skills, &rec.SkillCount, &status, &atText,
		&rec.TextMethod, &rec.Pages); err != nil {
		return rec, err
	}

	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return rec, err
	}
	if gpa.Valid {
		v := gpa.Float64
		rec.GPA = &v
	}
	if major.Valid {
		v := major.String
		rec.Major = &v
	}
	if semester.Valid {
		v := int(semester.Int64)
		rec.Semester = &v
	}
	if err := json.Unmarshal([]byte(skills), &rec.Skills); err != nil {
		return rec, fmt.Errorf("decode skills: %w", err)
	}
	if rec.Status, err = entity.ParseStatus(status); err != nil {
		return rec, err
	}
	if rec.ExtractedAt, err = parseTime(atText); err != nil {
		return rec, err
	}
	return rec, nil
}

func tallyColumn(s entity.Status) string {
	switch s.Kind {
	case constants.StatusSuccess:
		return "success"
	case constants.StatusPartial:
		return "partial"
	case constants.StatusFailed:
		return "failed"
	default:
		return "errors"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
