package models

import "time"

type Card struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"-"`
	Front             string     `json:"front"`
	Back              string     `json:"back"`
	ExampleSentence   string     `json:"example_sentence,omitempty"`
	LanguageSelection string     `json:"language_selection,omitempty"`
	AudioURL          string     `json:"audio_url,omitempty"`
	EaseFactor        float64    `json:"ease_factor"`
	Repetitions       int        `json:"repetitions"`
	IntervalDays      int        `json:"interval_days"`
	LastReviewed      *time.Time `json:"last_reviewed,omitempty"`
	NextReview        time.Time  `json:"next_review"`
	CreatedAt         time.Time  `json:"created_at"`
	Tags              []Tag      `json:"tags"`

	// Revision backs the optimistic schedule update and never leaves the server.
	Revision int64 `json:"-"`
}

// LeanCard is the trimmed listing payload: no scheduling state, no tags.
type LeanCard struct {
	ID                int64  `json:"id"`
	Front             string `json:"front"`
	Back              string `json:"back"`
	LanguageSelection string `json:"language_selection,omitempty"`
}

// CardInput carries the writable descriptive fields of a card.
type CardInput struct {
	Front             string
	Back              string
	ExampleSentence   string
	LanguageSelection string
	AudioURL          string
	TagIDs            []int64
}

type CardFilter struct {
	UserID  int64
	Search  string
	SortBy  string
	SortDir string
	Limit   int
	Offset  int
}
