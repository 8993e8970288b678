// Package runlog keeps a local history of claim runs so repeated
// invocations (cron fires every activity day) can be audited after
// the fact.
package runlog

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/runlog")

// Entry is one recorded run. Success/Failed/Coupons come from the
// claim outcome, Activities is the day count of the calendar fetched
// during the run.
type Entry struct {
	Id         int64
	Time       time.Time
	Mode       string
	Success    int
	Failed     int
	Coupons    int
	Activities int
	Message    string
}

type Service struct {
	db *sql.DB
}

func NewService(database *sql.DB) Service {
	return Service{db: database}
}

func (s Service) Record(ctx context.Context, entry Entry) error {
	ctx, span := tracer.Start(ctx, "Record")
	defer span.End()

	span.SetAttributes(attribute.String("mode", entry.Mode))

	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (time, mode, success, failed, coupons, activities, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Time.Unix(),
		entry.Mode,
		entry.Success,
		entry.Failed,
		entry.Coupons,
		entry.Activities,
		entry.Message,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "Recent")
	defer span.End()

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, time, mode, success, failed, coupons, activities, message
		FROM runs ORDER BY time DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var unix int64
		err := rows.Scan(
			&entry.Id,
			&unix,
			&entry.Mode,
			&entry.Success,
			&entry.Failed,
			&entry.Coupons,
			&entry.Activities,
			&entry.Message,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		entry.Time = time.Unix(unix, 0)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return entries, nil
}
