package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/umputun/hnscope/pkg/domain"
)

// DefaultBaseURL is the public Hacker News firebase API
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

const maxBodySize = 8 * 1024 * 1024

// Client fetches items and id lists from the Hacker News API.
// It never retries, retry policy belongs to the caller.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// Params configures Client
type Params struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	Burst     int
	UserAgent string
}

// NewClient makes a client with defaults applied to zero params
func NewClient(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.Timeout == 0 {
		p.Timeout = 10 * time.Second
	}
	if p.UserAgent == "" {
		p.UserAgent = "hnscope/1.0"
	}
	if p.Burst <= 0 {
		p.Burst = 1
	}

	limit := rate.Inf
	if p.RateLimit > 0 {
		limit = rate.Limit(p.RateLimit)
	}

	return &Client{
		baseURL:   strings.TrimSuffix(p.BaseURL, "/"),
		userAgent: p.UserAgent,
		client:    &http.Client{Timeout: p.Timeout},
		limiter:   rate.NewLimiter(limit, p.Burst),
	}
}

// apiItem mirrors the wire format, all fields optional
type apiItem struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	By          string  `json:"by"`
	Time        int64   `json:"time"`
	Text        string  `json:"text"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Score       int     `json:"score"`
	Descendants int     `json:"descendants"`
	Kids        []int64 `json:"kids"`
	Parts       []int64 `json:"parts"`
	Parent      int64   `json:"parent"`
	Dead        bool    `json:"dead"`
	Deleted     bool    `json:"deleted"`
}

// FetchItem retrieves a single item by id.
// Returns domain.ErrNetwork on transport or status errors and
// domain.ErrMalformedItem for null, empty or unparsable bodies.
func (c *Client) FetchItem(ctx context.Context, id int64) (domain.Item, error) {
	if id <= 0 {
		return domain.Item{}, fmt.Errorf("item %d: %w: non-positive id", id, domain.ErrMalformedItem)
	}

	body, err := c.get(ctx, fmt.Sprintf("/item/%d.json", id))
	if err != nil {
		return domain.Item{}, fmt.Errorf("item %d: %w", id, err)
	}

	var raw *apiItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Item{}, fmt.Errorf("item %d: %w: %v", id, domain.ErrMalformedItem, err)
	}
	if raw == nil || raw.ID == 0 {
		return domain.Item{}, fmt.Errorf("item %d: %w: empty response", id, domain.ErrMalformedItem)
	}

	return toDomainItem(raw), nil
}

// FetchIDs retrieves the ordered id list for a feed key.
// Feeds map to /{feed}stories.json, threads to the kids of the parent item.
// The list is returned as is, dead and deleted ids are filtered per item downstream.
func (c *Client) FetchIDs(ctx context.Context, key domain.FeedKey) ([]int64, error) {
	if key.IsThread() {
		parent, err := c.FetchItem(ctx, key.Parent)
		if err != nil {
			if domain.IsMalformed(err) {
				return nil, fmt.Errorf("thread %d: %w: %w", key.Parent, domain.ErrMalformedList, err)
			}
			return nil, fmt.Errorf("thread %d: %w", key.Parent, err)
		}
		return parent.Kids, nil
	}

	if !key.Feed.Valid() {
		return nil, fmt.Errorf("feed %q: %w: unknown feed", key.Feed, domain.ErrMalformedList)
	}

	body, err := c.get(ctx, "/"+key.Feed.Endpoint()+".json")
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", key.Feed, err)
	}

	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("feed %s: %w: %v", key.Feed, domain.ErrMalformedList, err)
	}
	if ids == nil {
		return nil, fmt.Errorf("feed %s: %w: null response", key.Feed, domain.ErrMalformedList)
	}
	return ids, nil
}

// get performs a rate limited GET and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrNetwork, err)
	}
	addHeaders(req, c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrNetwork, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d for %s", domain.ErrNetwork, resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %v", domain.ErrNetwork, path, err)
	}
	return body, nil
}

func toDomainItem(raw *apiItem) domain.Item {
	kids := raw.Kids
	if kids == nil {
		kids = []int64{}
	}
	return domain.Item{
		ID:          raw.ID,
		Type:        domain.ItemType(raw.Type),
		By:          raw.By,
		Time:        raw.Time,
		Text:        raw.Text,
		Title:       raw.Title,
		URL:         raw.URL,
		Score:       raw.Score,
		Descendants: raw.Descendants,
		Kids:        kids,
		Parts:       raw.Parts,
		Parent:      raw.Parent,
		Dead:        raw.Dead,
		Deleted:     raw.Deleted,
	}
}
