package domain

// FeedbackRecord is the persisted feedback form content
type FeedbackRecord struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp int64  `json:"timestamp"`
}

// MaxRating is the highest accepted rating, 0 means "not rated"
const MaxRating = 5
