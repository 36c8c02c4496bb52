package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLRepo stores sessions in the sessions table. Timestamps are unix seconds
// so the same queries run on MySQL and SQLite.
type SQLRepo struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db, now: time.Now}
}

func (r *SQLRepo) Create(ctx context.Context, userID int64, sessionID string, ttl time.Duration) error {
	if sessionID == "" {
		return ErrEmptyID
	}
	now := r.now().UTC()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, userID, now.Unix(), now.Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SQLRepo) IsValid(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE id = ? AND expires_at > ?
		)
	`, sessionID, r.now().UTC().Unix()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return exists, nil
}

func (r *SQLRepo) Invalidate(ctx context.Context, sessionID string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

func (r *SQLRepo) InvalidateUser(ctx context.Context, userID int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes rows past their expiry and reports how many went.
func (r *SQLRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, r.now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
