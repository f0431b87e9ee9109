package repository

import (
	"context"
	"database/sql"
	"time"

	"accessboard/backend/libs/presence"
)

// AccessLogRepository reads raw badge scans imported by the import service.
// Rows come back as free-text RawRecords; interpreting them is the
// presence library's job, not SQL's.
type AccessLogRepository struct {
	db *sql.DB
}

// NewAccessLogRepository returns repository.
func NewAccessLogRepository(db *sql.DB) *AccessLogRepository {
	return &AccessLogRepository{db: db}
}

// ListRawRecords returns scans whose event date falls inside [from, to].
func (r *AccessLogRepository) ListRawRecords(ctx context.Context, from, to time.Time) ([]presence.RawRecord, error) {
	const query = `
		SELECT badge_number,
		       to_char(event_date, 'YYYY-MM-DD'),
		       COALESCE(to_char(event_time, 'HH24:MI:SS'), ''),
		       COALESCE(central, ''),
		       COALESCE(reader, ''),
		       COALESCE(event_type, ''),
		       COALESCE(last_name, ''),
		       COALESCE(first_name, ''),
		       COALESCE(status, ''),
		       COALESCE(group_name, '')
		FROM access_logs
		WHERE event_date BETWEEN $1 AND $2
		ORDER BY event_date, event_time
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []presence.RawRecord
	for rows.Next() {
		var rec presence.RawRecord
		if err := rows.Scan(
			&rec.BadgeNumber,
			&rec.EventDate,
			&rec.EventTime,
			&rec.Central,
			&rec.Reader,
			&rec.EventType,
			&rec.LastName,
			&rec.FirstName,
			&rec.Status,
			&rec.Group,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// MaxEventDate returns the newest event date on record, or the zero time
// when no scans exist yet.
func (r *AccessLogRepository) MaxEventDate(ctx context.Context) (time.Time, error) {
	const query = `SELECT MAX(event_date) FROM access_logs`

	var max sql.NullTime
	if err := r.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return time.Time{}, err
	}
	if !max.Valid {
		return time.Time{}, nil
	}
	return max.Time, nil
}
