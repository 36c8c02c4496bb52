package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema := `
	CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);`

	_, err = db.Exec(schema)
	require.NoError(t, err)

	return db
}

func TestSQLRepo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	repo := NewSQLRepo(setupTestDB(t))
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Create(ctx, 1, "s1", time.Hour))
	require.NoError(t, repo.Create(ctx, 1, "s2", time.Hour))
	require.NoError(t, repo.Create(ctx, 2, "s3", time.Minute))

	t.Run("duplicate id", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, 1, "s1", time.Hour))
	})

	t.Run("empty id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(ctx, 1, "", time.Hour), ErrEmptyID)
	})

	t.Run("valid and unknown", func(t *testing.T) {
		ok, err := repo.IsValid(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.IsValid(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		now = now.Add(2 * time.Minute)

		ok, err := repo.IsValid(ctx, "s3")
		require.NoError(t, err)
		assert.False(t, ok)

		n, err := repo.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("invalidate one", func(t *testing.T) {
		require.NoError(t, repo.Invalidate(ctx, "s1"))

		ok, _ := repo.IsValid(ctx, "s1")
		assert.False(t, ok)
		ok, _ = repo.IsValid(ctx, "s2")
		assert.True(t, ok)
	})

	t.Run("invalidate user", func(t *testing.T) {
		require.NoError(t, repo.InvalidateUser(ctx, 1))

		ok, _ := repo.IsValid(ctx, "s2")
		assert.False(t, ok)
	})
}

func TestSQLRepo_BadDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLRepo(db)
	ctx := context.Background()

	assert.Error(t, repo.Create(ctx, 1, "s", time.Hour))
	_, err = repo.IsValid(ctx, "s")
	assert.Error(t, err)
	assert.Error(t, repo.Invalidate(ctx, "s"))
	assert.Error(t, repo.InvalidateUser(ctx, 1))
}

func TestRedisRepo(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRedisRepo(client)

	require.NoError(t, repo.Create(ctx, 1, "s1", time.Hour))
	require.NoError(t, repo.Create(ctx, 1, "s2", time.Hour))
	require.NoError(t, repo.Create(ctx, 2, "s3", time.Minute))

	t.Run("valid", func(t *testing.T) {
		ok, err := repo.IsValid(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, mr.Exists(userKeyPrefix+"1"))
	})

	t.Run("expiry", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)

		ok, err := repo.IsValid(ctx, "s3")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate one", func(t *testing.T) {
		require.NoError(t, repo.Invalidate(ctx, "s1"))
		require.NoError(t, repo.Invalidate(ctx, "s1"))

		ok, _ := repo.IsValid(ctx, "s1")
		assert.False(t, ok)
		ok, _ = repo.IsValid(ctx, "s2")
		assert.True(t, ok)
	})

	t.Run("invalidate user", func(t *testing.T) {
		require.NoError(t, repo.InvalidateUser(ctx, 1))

		ok, _ := repo.IsValid(ctx, "s2")
		assert.False(t, ok)
		assert.False(t, mr.Exists(userKeyPrefix+"1"))
	})

	t.Run("empty id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(ctx, 1, "", time.Hour), ErrEmptyID)
	})
}
