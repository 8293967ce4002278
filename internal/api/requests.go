package api

// Request bodies. Validation tags are enforced by decodeJSON before any
// service call.

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type cardRequest struct {
	Front             string `json:"front" validate:"required"`
	Back              string `json:"back" validate:"required"`
	ExampleSentence   string `json:"example_sentence"`
	LanguageSelection string `json:"language_selection" validate:"omitempty,oneof=DE_FR DE_ES EN_ES EN_FR EN_DE FR_ES EN_IT DE_IT FR_IT ES_IT"`
	AudioURL          string `json:"audio_url" validate:"omitempty,url"`

	// nil leaves the card's tags untouched, [] clears them.
	TagIDs []int64 `json:"tag_ids"`
}

type reviewRequest struct {
	CardID int64 `json:"card_id" validate:"required"`

	// Pointer so quality 0 (blackout) survives the required check.
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

type tagRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}
