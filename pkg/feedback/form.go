// Package feedback implements the feedback form on top of a key-value store.
// Input is validated locally, rejected submissions never reach the store.
package feedback

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/hnscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// DefaultKey is the store key used when Params.Key is empty
const DefaultKey = "hnscope:feedback"

// DefaultMaxCommentLength is used when Params.MaxCommentLength is not set
const DefaultMaxCommentLength = 500

// Store persists feedback records by key
type Store interface {
	Save(ctx context.Context, key string, rec domain.FeedbackRecord) error
	Load(ctx context.Context, key string) (*domain.FeedbackRecord, error)
	Clear(ctx context.Context, key string) error
}

// Form validates and persists the feedback record and keeps the last failure for display
type Form struct {
	store            Store
	key              string
	maxCommentLength int
	now              func() time.Time

	mu  sync.Mutex
	err error
}

// Params configures Form
type Params struct {
	Store            Store
	Key              string
	MaxCommentLength int
	Now              func() time.Time // clock for record timestamps, time.Now if nil
}

// NewForm makes a form with defaults applied to zero params
func NewForm(p Params) *Form {
	if p.Key == "" {
		p.Key = DefaultKey
	}
	if p.MaxCommentLength <= 0 {
		p.MaxCommentLength = DefaultMaxCommentLength
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Form{store: p.Store, key: p.Key, maxCommentLength: p.MaxCommentLength, now: p.Now}
}

// Key returns the store key the form writes to
func (f *Form) Key() string {
	return f.key
}

// Save validates rating and comment and stores the record with the current timestamp
func (f *Form) Save(ctx context.Context, rating int, comment string) (domain.FeedbackRecord, error) {
	trimmed, err := Validate(rating, comment, f.maxCommentLength)
	if err != nil {
		return domain.FeedbackRecord{}, f.fail(err)
	}

	rec := domain.FeedbackRecord{Rating: rating, Comment: trimmed, Timestamp: f.now().Unix()}
	if err := f.store.Save(ctx, f.key, rec); err != nil {
		lgr.Printf("[WARN] failed to save feedback: %v", err)
		return domain.FeedbackRecord{}, f.fail(err)
	}
	lgr.Printf("[DEBUG] feedback saved, rating %d, %d chars", rec.Rating, utf8.RuneCountInString(rec.Comment))
	return rec, f.fail(nil)
}

// Load returns the stored record, nil if nothing was saved yet
func (f *Form) Load(ctx context.Context) (*domain.FeedbackRecord, error) {
	rec, err := f.store.Load(ctx, f.key)
	if err != nil {
		lgr.Printf("[WARN] failed to load feedback: %v", err)
		return nil, f.fail(err)
	}
	return rec, f.fail(nil)
}

// Clear removes the stored record
func (f *Form) Clear(ctx context.Context) error {
	if err := f.store.Clear(ctx, f.key); err != nil {
		lgr.Printf("[WARN] failed to clear feedback: %v", err)
		return f.fail(err)
	}
	return f.fail(nil)
}

// Err returns the failure of the last operation, nil if it succeeded
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Form) fail(err error) error {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	return err
}

// Validate checks a submission and returns the trimmed comment.
// Rating must be 1..domain.MaxRating, the trimmed comment at most maxLen characters.
func Validate(rating int, comment string, maxLen int) (string, error) {
	if rating == 0 {
		return "", fmt.Errorf("%w: rating is required", domain.ErrValidation)
	}
	if rating < 0 || rating > domain.MaxRating {
		return "", fmt.Errorf("%w: rating %d out of range 1..%d", domain.ErrValidation, rating, domain.MaxRating)
	}
	trimmed := strings.TrimSpace(comment)
	if n := utf8.RuneCountInString(trimmed); n > maxLen {
		return "", fmt.Errorf("%w: comment is %d characters, max %d", domain.ErrValidation, n, maxLen)
	}
	return trimmed, nil
}
