package session

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newStore := func() *MemoryStore {
		s := NewMemoryStore()
		s.now = func() time.Time { return now }
		return s
	}

	t.Run("put then get", func(t *testing.T) {
		store := newStore()
		sess := Session{Token: "tok", UserID: "admin", Username: "admin", ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, store.Put(ctx, sess))

		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "admin", got.UserID)
	})

	t.Run("unknown token", func(t *testing.T) {
		store := newStore()
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired session is dropped on access", func(t *testing.T) {
		store := newStore()
		sess := Session{Token: "tok", ExpiresAt: now.Add(-time.Minute)}
		require.NoError(t, store.Put(ctx, sess))

		_, err := store.Get(ctx, "tok")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotContains(t, store.sessions, "tok")
	})

	t.Run("session expiring exactly now is expired", func(t *testing.T) {
		store := newStore()
		sess := Session{Token: "tok", ExpiresAt: now}
		require.NoError(t, store.Put(ctx, sess))

		_, err := store.Get(ctx, "tok")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore()
		require.NoError(t, store.Put(ctx, Session{Token: "tok", ExpiresAt: now.Add(time.Hour)}))
		require.NoError(t, store.Delete(ctx, "tok"))
		_, err := store.Get(ctx, "tok")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	t.Run("put upserts", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expiresAt := time.Now().Add(time.Hour)
		dbMock.ExpectExec("INSERT INTO sessions").
			WithArgs("tok", "admin", "admin", expiresAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		store := NewPostgresStore(db)
		err = store.Put(ctx, Session{Token: "tok", UserID: "admin", Username: "admin", ExpiresAt: expiresAt})

		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("get live session", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expiresAt := time.Now().Add(time.Hour)
		rows := sqlmock.NewRows([]string{"token", "user_id", "username", "expires_at"}).
			AddRow("tok", "admin", "admin", expiresAt)
		dbMock.ExpectQuery("SELECT token, user_id, username, expires_at").
			WithArgs("tok").
			WillReturnRows(rows)

		store := NewPostgresStore(db)
		got, err := store.Get(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, "admin", got.Username)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("expired or unknown session reads as not found", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectQuery("SELECT token, user_id, username, expires_at").
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "username", "expires_at"}))

		store := NewPostgresStore(db)
		_, err = store.Get(ctx, "tok")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectExec("DELETE FROM sessions").
			WithArgs("tok").
			WillReturnResult(sqlmock.NewResult(0, 1))

		store := NewPostgresStore(db)
		assert.NoError(t, store.Delete(ctx, "tok"))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
