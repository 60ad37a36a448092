package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableLessonEvents).
		Columns("sequence", "timestamp", "topic", "insight_live", "text_live", "images_live", "fallback", "latency_ms").
		Values(seqNum, time.Now().UnixNano(), data.Topic, data.InsightLive, data.TextLive, data.ImagesLive, data.Fallback, data.LatencyMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error) {
	b := builder()
	sel := b.Select("sequence", "timestamp", "topic", "insight_live", "text_live", "images_live", "fallback", "latency_ms").
		From(b.Table(tableLessonEvents))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var out []LessonEventRecord
	for rows.Next() {
		var (
			rec LessonEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.Topic, &rec.InsightLive, &rec.TextLive, &rec.ImagesLive, &rec.Fallback, &rec.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
