package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Get(ctx context.Context, key string) (string, bool, error) {
	b := builder()
	query, args := b.Select("value").From(b.Table(tableProfile)).Where(entsql.EQ("key", key)).Query()

	var v string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get profile entry %q: %w", key, err)
	}
	return v, true, nil
}

func (r *profileRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(tableProfile).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixNano()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set profile entry %q: %w", key, err)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(tableProfile).Where(entsql.EQ("key", key)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete profile entry %q: %w", key, err)
	}
	return nil
}
