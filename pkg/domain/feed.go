package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Feed is a named, server-ranked list of story ids
type Feed string

const (
	FeedTop  Feed = "top"
	FeedNew  Feed = "new"
	FeedBest Feed = "best"
	FeedAsk  Feed = "ask"
	FeedShow Feed = "show"
	FeedJob  Feed = "job"
)

// Feeds lists all supported feeds in display order
var Feeds = []Feed{FeedTop, FeedNew, FeedBest, FeedAsk, FeedShow, FeedJob}

// Endpoint returns the API path (without extension) serving ids for the feed
func (f Feed) Endpoint() string {
	return string(f) + "stories"
}

// Valid checks if the feed is one of the known feeds
func (f Feed) Valid() bool {
	for _, known := range Feeds {
		if f == known {
			return true
		}
	}
	return false
}

// FeedKey identifies the list an accumulated state belongs to.
// It is either a named feed or a comment thread rooted at Parent.
type FeedKey struct {
	Feed   Feed
	Parent int64
}

// FeedKeyOf makes a key for a named feed
func FeedKeyOf(f Feed) FeedKey {
	return FeedKey{Feed: f}
}

// ThreadKey makes a key for the comments of a parent item
func ThreadKey(parent int64) FeedKey {
	return FeedKey{Parent: parent}
}

// IsThread reports whether the key points to a comment thread
func (k FeedKey) IsThread() bool {
	return k.Parent > 0
}

// IsZero reports whether the key is unset
func (k FeedKey) IsZero() bool {
	return k.Feed == "" && k.Parent == 0
}

// String returns "top", "new", ... for feeds and "item:<id>" for threads
func (k FeedKey) String() string {
	if k.IsThread() {
		return "item:" + strconv.FormatInt(k.Parent, 10)
	}
	return string(k.Feed)
}

// ParseFeedKey parses the string form produced by FeedKey.String
func ParseFeedKey(s string) (FeedKey, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if idStr, ok := strings.CutPrefix(s, "item:"); ok {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return FeedKey{}, fmt.Errorf("invalid thread id %q", idStr)
		}
		return ThreadKey(id), nil
	}
	f := Feed(s)
	if !f.Valid() {
		return FeedKey{}, fmt.Errorf("unknown feed %q", s)
	}
	return FeedKeyOf(f), nil
}
