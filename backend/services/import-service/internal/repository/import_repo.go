package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"accessboard/backend/libs/presence"
)

// insertChunkSize keeps multi-row inserts under the driver parameter limit.
const insertChunkSize = 500

// AccessLogRow is one validated scan ready for storage: the raw export
// fields plus the timestamp the normalizer resolved for them.
type AccessLogRow struct {
	Record    presence.RawRecord
	Timestamp time.Time
}

// ImportBatch records one processed export file.
type ImportBatch struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportRepository persists access logs and import history.
type ImportRepository struct {
	db *sql.DB
}

// NewImportRepository returns repository.
func NewImportRepository(db *sql.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// InsertAccessLogs stores rows in chunks using multi-row inserts.
func (r *ImportRepository) InsertAccessLogs(ctx context.Context, batchID string, rows []AccessLogRow) error {
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := r.insertChunk(ctx, batchID, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ImportRepository) insertChunk(ctx context.Context, batchID string, rows []AccessLogRow) error {
	const columns = 11
	placeholders := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*columns)

	for i, row := range rows {
		base := i * columns
		marks := make([]string, columns)
		for j := range marks {
			marks[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(marks, ", ")+")")

		rec := row.Record
		args = append(args,
			batchID,
			rec.BadgeNumber,
			row.Timestamp,
			row.Timestamp.Format("15:04:05"),
			nullable(rec.Central),
			nullable(rec.Reader),
			nullable(rec.EventType),
			nullable(rec.LastName),
			nullable(rec.FirstName),
			nullable(rec.Status),
			nullable(rec.Group),
		)
	}

	query := `
		INSERT INTO access_logs (batch_id, badge_number, event_date, event_time, central, reader, event_type, last_name, first_name, status, group_name)
		VALUES ` + strings.Join(placeholders, ", ")

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// InsertBatch records the import in history.
func (r *ImportRepository) InsertBatch(ctx context.Context, batch ImportBatch) error {
	const query = `
		INSERT INTO import_batches (id, filename, imported, skipped, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, batch.ID, batch.Filename, batch.Imported, batch.Skipped, batch.CreatedAt)
	return err
}

// ListBatches returns the most recent imports, newest first.
func (r *ImportRepository) ListBatches(ctx context.Context, limit int) ([]ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, filename, imported, skipped, created_at
		FROM import_batches
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var batch ImportBatch
		if err := rows.Scan(&batch.ID, &batch.Filename, &batch.Imported, &batch.Skipped, &batch.CreatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return batches, nil
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
