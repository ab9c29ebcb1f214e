package feedback

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/feedback/mocks"
	"github.com/umputun/hnscope/pkg/repository"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func TestForm_Save(t *testing.T) {
	t.Run("zero rating rejected without store write", func(t *testing.T) {
		store := &mocks.StoreMock{}
		f := NewForm(Params{Store: store, Now: fixedNow})

		_, err := f.Save(context.Background(), 0, "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, f.Err(), domain.ErrValidation)
		assert.Empty(t, store.SaveCalls())
	})

	t.Run("trimmed comment persisted", func(t *testing.T) {
		store := &mocks.StoreMock{
			SaveFunc: func(ctx context.Context, key string, rec domain.FeedbackRecord) error { return nil },
		}
		f := NewForm(Params{Store: store, Now: fixedNow})

		rec, err := f.Save(context.Background(), 4, " hi ")
		require.NoError(t, err)
		want := domain.FeedbackRecord{Rating: 4, Comment: "hi", Timestamp: fixedNow().Unix()}
		assert.Equal(t, want, rec)
		require.Len(t, store.SaveCalls(), 1)
		assert.Equal(t, DefaultKey, store.SaveCalls()[0].Key)
		assert.Equal(t, want, store.SaveCalls()[0].Rec)
		require.NoError(t, f.Err())
	})

	t.Run("comment too long", func(t *testing.T) {
		store := &mocks.StoreMock{}
		f := NewForm(Params{Store: store, MaxCommentLength: 5})

		_, err := f.Save(context.Background(), 3, "  toolong  ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, store.SaveCalls())
	})

	t.Run("length counted after trim", func(t *testing.T) {
		store := &mocks.StoreMock{
			SaveFunc: func(ctx context.Context, key string, rec domain.FeedbackRecord) error { return nil },
		}
		f := NewForm(Params{Store: store, MaxCommentLength: 5, Key: "custom"})

		rec, err := f.Save(context.Background(), 5, "   héllo   ")
		require.NoError(t, err)
		assert.Equal(t, "héllo", rec.Comment)
		assert.Equal(t, "custom", store.SaveCalls()[0].Key)
	})

	t.Run("storage failure surfaced", func(t *testing.T) {
		store := &mocks.StoreMock{
			SaveFunc: func(ctx context.Context, key string, rec domain.FeedbackRecord) error {
				return domain.ErrStorage
			},
		}
		f := NewForm(Params{Store: store})

		_, err := f.Save(context.Background(), 2, "ok")
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.ErrorIs(t, f.Err(), domain.ErrStorage)
	})
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name    string
		rating  int
		comment string
		want    string
		wantErr bool
	}{
		{"no rating", 0, "nice", "", true},
		{"negative rating", -1, "nice", "", true},
		{"rating too high", 6, "nice", "", true},
		{"min rating", 1, "", "", false},
		{"max rating", 5, "\tgreat\n", "great", false},
		{"at max length", 3, strings.Repeat("a", 10), strings.Repeat("a", 10), false},
		{"over max length", 3, strings.Repeat("a", 11), "", true},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.rating, tt.comment, 10)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_LoadClear(t *testing.T) {
	store := &mocks.StoreMock{
		LoadFunc: func(ctx context.Context, key string) (*domain.FeedbackRecord, error) {
			return &domain.FeedbackRecord{Rating: 3, Comment: "ok", Timestamp: 10}, nil
		},
		ClearFunc: func(ctx context.Context, key string) error { return domain.ErrStorage },
	}
	f := NewForm(Params{Store: store})

	rec, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Rating)

	err = f.Clear(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, f.Err(), domain.ErrStorage)

	_, err = f.Load(context.Background())
	require.NoError(t, err)
	assert.NoError(t, f.Err(), "success clears recorded failure")
}

func TestForm_WithRepository(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	f := NewForm(Params{Store: repos.Feedback, Now: fixedNow})

	rec, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = f.Save(context.Background(), 0, "x")
	require.ErrorIs(t, err, domain.ErrValidation)
	rec, err = f.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec, "rejected save never reaches the store")

	_, err = f.Save(context.Background(), 4, " hi ")
	require.NoError(t, err)
	rec, err = f.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.FeedbackRecord{Rating: 4, Comment: "hi", Timestamp: fixedNow().Unix()}, *rec)

	require.NoError(t, f.Clear(context.Background()))
	rec, err = f.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}
