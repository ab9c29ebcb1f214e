package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/hnscope/pkg/domain"
)

func TestFeedbackRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	r := repos.Feedback

	t.Run("load absent", func(t *testing.T) {
		rec, err := r.Load(ctx, "hnscope:feedback")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("save and load", func(t *testing.T) {
		err := r.Save(ctx, "hnscope:feedback", domain.FeedbackRecord{Rating: 4, Comment: "hi", Timestamp: 1700000000})
		require.NoError(t, err)

		rec, err := r.Load(ctx, "hnscope:feedback")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, domain.FeedbackRecord{Rating: 4, Comment: "hi", Timestamp: 1700000000}, *rec)
	})

	t.Run("stored as json", func(t *testing.T) {
		var value string
		err := repos.DB.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", "hnscope:feedback")
		require.NoError(t, err)
		assert.JSONEq(t, `{"rating":4,"comment":"hi","timestamp":1700000000}`, value)
	})

	t.Run("save replaces", func(t *testing.T) {
		err := r.Save(ctx, "hnscope:feedback", domain.FeedbackRecord{Rating: 2, Comment: "meh", Timestamp: 1700000100})
		require.NoError(t, err)

		rec, err := r.Load(ctx, "hnscope:feedback")
		require.NoError(t, err)
		assert.Equal(t, 2, rec.Rating)
		assert.Equal(t, "meh", rec.Comment)

		var count int
		require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM kv"))
		assert.Equal(t, 1, count)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, r.Save(ctx, "other", domain.FeedbackRecord{Rating: 5, Comment: "great"}))
		rec, err := r.Load(ctx, "hnscope:feedback")
		require.NoError(t, err)
		assert.Equal(t, 2, rec.Rating)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, r.Clear(ctx, "hnscope:feedback"))
		rec, err := r.Load(ctx, "hnscope:feedback")
		require.NoError(t, err)
		assert.Nil(t, rec)

		// clearing again is fine
		require.NoError(t, r.Clear(ctx, "hnscope:feedback"))

		rec, err = r.Load(ctx, "other")
		require.NoError(t, err)
		assert.NotNil(t, rec)
	})

	t.Run("corrupted value", func(t *testing.T) {
		_, err := repos.DB.ExecContext(ctx, "INSERT INTO kv (key, value) VALUES ('bad', 'not json')")
		require.NoError(t, err)
		_, err = r.Load(ctx, "bad")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestFeedbackRepository_ClosedDB(t *testing.T) {
	repos := setupTestRepos(t)
	require.NoError(t, repos.Close())
	ctx := context.Background()

	err := repos.Feedback.Save(ctx, "k", domain.FeedbackRecord{Rating: 1})
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = repos.Feedback.Load(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrStorage)

	err = repos.Feedback.Clear(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrStorage)
}
