package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdeck/ticket-insights/internal/ticket"
)

// Store persists generated reports and validation diagnostics to Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func NewFromConnString(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to Postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS ticket_reports (
	id            BIGSERIAL PRIMARY KEY,
	generated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	total_records INT NOT NULL,
	status        TEXT NOT NULL,
	report        JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket_diagnostics (
	id            BIGSERIAL PRIMARY KEY,
	recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	batch_key     TEXT NOT NULL,
	ticket_index  INT NOT NULL,
	ticket_id     TEXT NOT NULL,
	issue_type    TEXT NOT NULL,
	invalid_value JSONB
);
`

// EnsureSchema creates the report and diagnostics tables if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveReport stores one assembled report, both as queryable columns and as
// the full JSON document.
func (s *Store) SaveReport(ctx context.Context, report ticket.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO ticket_reports (total_records, status, report) VALUES ($1, $2, $3)`,
		report.Meta.TotalRecords, report.Meta.Status, data)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// SaveDiagnostics stores the invalid-resolution diagnostics of one batch
// under a shared batch key.
func (s *Store) SaveDiagnostics(ctx context.Context, batchKey string, diagnostics []ticket.InvalidResolution) error {
	for _, d := range diagnostics {
		value, err := json.Marshal(d.InvalidValue)
		if err != nil {
			return err
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO ticket_diagnostics (batch_key, ticket_index, ticket_id, issue_type, invalid_value)
			 VALUES ($1, $2, $3, $4, $5)`,
			batchKey, d.Index, d.TicketID, string(d.IssueType), value)
		if err != nil {
			return fmt.Errorf("save diagnostic for index %d: %w", d.Index, err)
		}
	}
	return nil
}

// StoredReport is one persisted report row.
type StoredReport struct {
	ID          int64         `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Report      ticket.Report `json:"report"`
}

// RecentReports returns the most recently generated reports, newest first.
func (s *Store) RecentReports(ctx context.Context, limit int) ([]StoredReport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, generated_at, report FROM ticket_reports ORDER BY generated_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []StoredReport
	for rows.Next() {
		var sr StoredReport
		var data []byte
		if err := rows.Scan(&sr.ID, &sr.GeneratedAt, &data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &sr.Report); err != nil {
			return nil, err
		}
		reports = append(reports, sr)
	}
	return reports, rows.Err()
}

// RecentDiagnostics returns the most recently recorded diagnostics, newest
// first.
func (s *Store) RecentDiagnostics(ctx context.Context, limit int) ([]StoredDiagnostic, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, recorded_at, batch_key, ticket_index, ticket_id, issue_type, invalid_value
		 FROM ticket_diagnostics ORDER BY recorded_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	var diagnostics []StoredDiagnostic
	for rows.Next() {
		var sd StoredDiagnostic
		var value []byte
		if err := rows.Scan(&sd.ID, &sd.RecordedAt, &sd.BatchKey, &sd.TicketIndex, &sd.TicketID, &sd.IssueType, &value); err != nil {
			return nil, err
		}
		if len(value) > 0 {
			if err := json.Unmarshal(value, &sd.InvalidValue); err != nil {
				return nil, err
			}
		}
		diagnostics = append(diagnostics, sd)
	}
	return diagnostics, rows.Err()
}

// StoredDiagnostic is one persisted diagnostic row.
type StoredDiagnostic struct {
	ID           int64     `json:"id"`
	RecordedAt   time.Time `json:"recorded_at"`
	BatchKey     string    `json:"batch_key"`
	TicketIndex  int       `json:"ticket_index"`
	TicketID     string    `json:"ticket_id"`
	IssueType    string    `json:"issue_type"`
	InvalidValue any       `json:"invalid_value"`
}
