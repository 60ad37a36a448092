package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAchievementEvent(ctx context.Context, data AchievementEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableAchievements).
		Columns("sequence", "timestamp", "user_id", "achievement", "topic", "score_id").
		Values(seqNum, time.Now().UnixNano(), data.UserID, data.Achievement, data.Topic, data.ScoreID).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save achievement event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAchievementEvents(ctx context.Context, userID string, opts QueryOpts) ([]AchievementEventRecord, error) {
	b := builder()
	sel := b.Select("sequence", "timestamp", "user_id", "achievement", "topic", "score_id").
		From(b.Table(tableAchievements))
	if userID != "" {
		sel.Where(entsql.EQ("user_id", userID))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query achievement events: %w", err)
	}
	defer rows.Close()

	var out []AchievementEventRecord
	for rows.Next() {
		var (
			rec AchievementEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.UserID, &rec.Achievement, &rec.Topic, &rec.ScoreID); err != nil {
			return nil, fmt.Errorf("scan achievement event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
