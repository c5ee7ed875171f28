package models

import (
	"time"
)

// Word is a single entry from the course word list, tagged with the
// frequency class the server assigned to it.
type Word struct {
	Word           string `json:"word"`
	FrequencyClass int    `json:"frequencyClass"`
}

// Review is a review event for a single word. Interval is the spacing
// interval in hours that was in effect when the word was reviewed.
type Review struct {
	Word     string    `json:"word"`
	Learned  time.Time `json:"learned"`
	Reviewed time.Time `json:"reviewed"`
	Interval float64   `json:"interval"`
}

// Due returns when the review falls due again.
func (r Review) Due() time.Time {
	return r.Reviewed.Add(time.Duration(r.Interval * float64(time.Hour)))
}

// PendingReview is a locally recorded review that the server has not yet
// acknowledged. SequenceNumber is assigned from a strictly increasing
// per-device counter when the review is recorded.
type PendingReview struct {
	Review
	SequenceNumber int64 `json:"sequenceNumber"`
}

