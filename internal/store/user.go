package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var userColumns = []string{
	"id", "email", "password_hash", "display_name", "photo_url", "created_at", "updated_at",
}

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, u UserRecord) error {
	query, args := builder().Insert(tableUsers).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.PasswordHash, u.DisplayName, u.PhotoURL, u.CreatedAt.UnixNano(), u.UpdatedAt.UnixNano()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %q: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) ByEmail(ctx context.Context, email string) (*UserRecord, error) {
	return r.one(ctx, entsql.EQ("email", email))
}

func (r *userRepo) ByID(ctx context.Context, id string) (*UserRecord, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *userRepo) UpdateProfile(ctx context.Context, id, displayName, photoURL string) error {
	query, args := builder().Update(tableUsers).
		Set("display_name", displayName).
		Set("photo_url", photoURL).
		Set("updated_at", time.Now().UnixNano()).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update user %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *userRepo) one(ctx context.Context, p *entsql.Predicate) (*UserRecord, error) {
	b := builder()
	query, args := b.Select(userColumns...).From(b.Table(tableUsers)).Where(p).Limit(1).Query()

	var (
		u                UserRecord
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.PhotoURL, &created, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.Unix(0, created).UTC()
	u.UpdatedAt = time.Unix(0, updated).UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
