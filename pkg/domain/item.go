package domain

import "time"

// ItemType is the kind of a Hacker News item
type ItemType string

const (
	ItemStory   ItemType = "story"
	ItemComment ItemType = "comment"
	ItemJob     ItemType = "job"
	ItemPoll    ItemType = "poll"
	ItemPollOpt ItemType = "pollopt"
)

// Item represents a single story, comment, job or poll as returned by the API.
// Values are immutable once fetched; Kids is never nil.
type Item struct {
	ID          int64    `json:"id"`
	Type        ItemType `json:"type"`
	By          string   `json:"by,omitempty"`
	Time        int64    `json:"time"` // unix seconds, 0 when absent
	Text        string   `json:"text,omitempty"`
	Title       string   `json:"title,omitempty"`
	URL         string   `json:"url,omitempty"`
	Score       int      `json:"score"`
	Descendants int      `json:"descendants"`
	Kids        []int64  `json:"kids"`
	Parts       []int64  `json:"parts,omitempty"`
	Parent      int64    `json:"parent,omitempty"`
	Dead        bool     `json:"dead"`
	Deleted     bool     `json:"deleted"`
}

// Visible reports whether the item may be shown, dead and deleted items never are
func (i Item) Visible() bool {
	return !i.Dead && !i.Deleted
}

// PostedAt returns item time as time.Time, zero time if the item has no timestamp
func (i Item) PostedAt() time.Time {
	if i.Time == 0 {
		return time.Time{}
	}
	return time.Unix(i.Time, 0).UTC()
}
