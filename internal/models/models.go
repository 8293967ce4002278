package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Tag struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}

type ReviewHistory struct {
	ID           int64     `json:"id"`
	CardID       int64     `json:"card_id"`
	ReviewedAt   time.Time `json:"reviewed_at"`
	Quality      int       `json:"quality"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
}

// TagInput carries the writable fields of a tag.
type TagInput struct {
	Name  string
	Color string
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type DeckStats struct {
	TotalCards      int     `json:"total_cards"`
	CardsDue        int     `json:"cards_due"`
	CardsDueSoon    int     `json:"cards_due_soon"`
	TotalReviews    int     `json:"total_reviews"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}
