package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var scoreColumns = []string{
	"id", "user_id", "user_name", "topic", "score",
	"total_questions", "percentage", "time_spent", "timestamp",
}

type scoreRepo struct {
	db *sql.DB
}

func (r *scoreRepo) Insert(ctx context.Context, rec ScoreRecord) error {
	query, args := builder().Insert(tableScores).
		Columns(scoreColumns...).
		Values(
			rec.ID, rec.UserID, rec.UserName, rec.Topic, rec.Score,
			rec.TotalQuestions, rec.Percentage, rec.TimeSpent, rec.Timestamp.UnixNano(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (r *scoreRepo) ByUser(ctx context.Context, userID string, limit int) ([]ScoreRecord, error) {
	b := builder()
	sel := b.Select(scoreColumns...).
		From(b.Table(tableScores)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("timestamp"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.query(ctx, sel)
}

func (r *scoreRepo) Ranked(ctx context.Context, topic string, limit int) ([]ScoreRecord, error) {
	b := builder()
	sel := b.Select(scoreColumns...).From(b.Table(tableScores))
	if topic != "" {
		sel.Where(entsql.EQ("topic", topic))
	}
	// Timestamp keeps ties stable: the earlier of two identical results ranks first.
	sel.OrderBy(entsql.Desc("percentage"), entsql.Asc("time_spent"), entsql.Asc("timestamp"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.query(ctx, sel)
}

func (r *scoreRepo) query(ctx context.Context, sel *entsql.Selector) ([]ScoreRecord, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRecord
	for rows.Next() {
		var (
			rec ScoreRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.UserName, &rec.Topic, &rec.Score,
			&rec.TotalQuestions, &rec.Percentage, &rec.TimeSpent, &ts,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
