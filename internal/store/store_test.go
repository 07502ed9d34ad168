package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_IsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestVisitors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	visits := []Visitor{
		{HashedIP: "aaaa", UserAgent: "ua", Path: "/", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "aaaa", UserAgent: "ua", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "bbbb", UserAgent: "ua", Path: "/privacy", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "cccc", UserAgent: "ua", Path: "/", Timestamp: now.Add(-400 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}

	recent, err := s.RecentVisitors(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Timestamp.Equal(now.Add(-time.Hour)))
	assert.Equal(t, "aaaa", recent[0].HashedIP)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.Equal(t, []Path{{Path: "/", Views: 3}, {Path: "/privacy", Views: 1}}, stats.TopPaths)

	removed, err := s.PurgeVisitorsBefore(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	stats, err = s.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalVisitors)
}

func TestMessages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.SaveMessage(ctx, Message{
		Name: "Ada", Email: "ada@example.com", Subject: "Hello", Body: "First",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := s.SaveMessage(ctx, Message{Name: "Bob", Email: "bob@example.com", Body: "Second"})
	require.NoError(t, err)
	assert.False(t, second.CreatedAt.IsZero())

	require.NoError(t, s.MarkDelivered(ctx, first.ID))

	messages, err := s.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, "First", messages[1].Body)
	assert.True(t, messages[1].Delivered)
	assert.False(t, messages[0].Delivered)

	ok, err := s.DeleteMessage(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteMessage(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	stats, err := s.Stats(ctx, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalMessages)
	require.Len(t, stats.RecentMessages, 1)
	assert.Equal(t, "Bob", stats.RecentMessages[0].Name)
}
