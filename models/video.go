package models

import "time"

// VideoCandidate is a single search result under consideration for selection.
// DurationSeconds is derived from the ISO-8601 Duration string when the
// candidate passes through the duration filter.
type VideoCandidate struct {
	ID              string
	Title           string
	ChannelTitle    string
	PublishedAt     time.Time
	Duration        string
	DurationSeconds int
	ViewCount       int64
	URL             string
}

// Selection is the outcome of ranking: the chosen candidate plus the
// model's (or the fallback) explanation for the choice.
type Selection struct {
	Video       VideoCandidate
	Explanation string
}
