package pager

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/hnscope/pkg/domain"
)

//go:generate moq -out mocks/item_fetcher.go -pkg mocks -skip-ensure -fmt goimports . ItemFetcher
//go:generate moq -out mocks/id_source.go -pkg mocks -skip-ensure -fmt goimports . IDSource

// ItemFetcher retrieves a single item by id
type ItemFetcher interface {
	FetchItem(ctx context.Context, id int64) (domain.Item, error)
}

// IDSource retrieves the ordered id list of a feed or thread
type IDSource interface {
	FetchIDs(ctx context.Context, key domain.FeedKey) ([]int64, error)
}

// PageAssembler turns a window of an id list into visible items
type PageAssembler interface {
	Assemble(ctx context.Context, ids []int64, w Window) ([]domain.Item, error)
}

// RetryFunc runs operation with the caller's retry policy
type RetryFunc func(ctx context.Context, operation func() error) error

// Assembler fetches all items of a window concurrently and returns them in id list order.
// Items failing to fetch, dead or deleted are dropped, they never fail the page.
type Assembler struct {
	fetcher       ItemFetcher
	maxConcurrent int
	retryFunc     RetryFunc
}

// AssemblerParams configures Assembler
type AssemblerParams struct {
	Fetcher       ItemFetcher
	MaxConcurrent int       // in-flight fetches limit, 0 for no limit
	RetryFunc     RetryFunc // optional, single attempt if nil
}

// NewAssembler makes an assembler
func NewAssembler(p AssemblerParams) *Assembler {
	if p.RetryFunc == nil {
		p.RetryFunc = func(_ context.Context, operation func() error) error { return operation() }
	}
	return &Assembler{fetcher: p.Fetcher, maxConcurrent: p.MaxConcurrent, retryFunc: p.RetryFunc}
}

// Assemble fetches items of the window and waits for all of them to settle.
// Fails only for an invalid window or a canceled context.
func (a *Assembler) Assemble(ctx context.Context, ids []int64, w Window) ([]domain.Item, error) {
	if err := w.Validate(len(ids)); err != nil {
		return nil, err
	}
	w = w.Clamp(len(ids))
	batch := ids[w.Start:w.End()]

	results := make([]*domain.Item, len(batch))
	var g errgroup.Group
	if a.maxConcurrent > 0 {
		g.SetLimit(a.maxConcurrent)
	}

	for i, id := range batch {
		g.Go(func() error {
			var item domain.Item
			err := a.retryFunc(ctx, func() error {
				var fetchErr error
				item, fetchErr = a.fetcher.FetchItem(ctx, id)
				return fetchErr
			})
			if err != nil {
				lgr.Printf("[DEBUG] drop item %d: %v", id, err)
				return nil
			}
			if !item.Visible() {
				lgr.Printf("[DEBUG] drop item %d: dead=%v, deleted=%v", id, item.Dead, item.Deleted)
				return nil
			}
			results[i] = &item
			return nil
		})
	}
	_ = g.Wait() // goroutines never fail

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assemble page %d: %w", w.Page(), err)
	}

	items := make([]domain.Item, 0, len(batch))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}
	lgr.Printf("[DEBUG] assembled page %d, %d of %d items", w.Page(), len(items), len(batch))
	return items, nil
}

// NewBackoffRetry makes a RetryFunc retrying network failures with exponential backoff.
// Malformed responses and canceled contexts are returned right away.
func NewBackoffRetry(attempts int, initialDelay, maxDelay time.Duration) RetryFunc {
	if attempts <= 1 {
		return func(_ context.Context, operation func() error) error { return operation() }
	}
	return func(ctx context.Context, operation func() error) error {
		retrier := repeater.NewBackoff(attempts, initialDelay, repeater.WithMaxDelay(maxDelay))
		var terminal error
		err := retrier.Do(ctx, func() error {
			err := operation()
			if err != nil && (domain.IsMalformed(err) || ctx.Err() != nil) {
				terminal = err
				return nil // stop repeating
			}
			return err
		})
		if terminal != nil {
			return terminal
		}
		return err
	}
}
