package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rylessKechit/salesup/internal/domain"
)

func TestSessionStore(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	session := func(id string) *domain.RoleplaySession {
		return &domain.RoleplaySession{ID: id, UserID: "user-1"}
	}

	t.Run("stores and returns sessions within the TTL", func(t *testing.T) {
		store := NewSessionStore(30 * time.Minute)
		store.now = func() time.Time { return now }

		store.Put(session("session-1"))

		got := store.Get("session-1")
		require.NotNil(t, got)
		assert.Equal(t, "session-1", got.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("returns nil for unknown sessions", func(t *testing.T) {
		store := NewSessionStore(30 * time.Minute)

		assert.Nil(t, store.Get("missing"))
	})

	t.Run("expires sessions lazily on read", func(t *testing.T) {
		store := NewSessionStore(30 * time.Minute)
		current := now
		store.now = func() time.Time { return current }

		store.Put(session("session-1"))
		current = now.Add(31 * time.Minute)

		assert.Nil(t, store.Get("session-1"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("put resets the TTL", func(t *testing.T) {
		store := NewSessionStore(30 * time.Minute)
		current := now
		store.now = func() time.Time { return current }

		store.Put(session("session-1"))
		current = now.Add(20 * time.Minute)
		store.Put(session("session-1"))
		current = now.Add(45 * time.Minute)

		assert.NotNil(t, store.Get("session-1"))
	})

	t.Run("delete removes the session", func(t *testing.T) {
		store := NewSessionStore(30 * time.Minute)
		store.now = func() time.Time { return now }

		store.Put(session("session-1"))
		store.Delete("session-1")

		assert.Nil(t, store.Get("session-1"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("sweep evicts only expired sessions", func(t *testing.T) {
		store := NewSessionStore(30 * time.Minute)
		current := now
		store.now = func() time.Time { return current }

		store.Put(session("old"))
		current = now.Add(20 * time.Minute)
		store.Put(session("fresh"))
		current = now.Add(40 * time.Minute)

		store.evictExpired()

		assert.Equal(t, 1, store.Len())
		assert.NotNil(t, store.Get("fresh"))
	})
}
