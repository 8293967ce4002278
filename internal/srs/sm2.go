// Package srs implements the SM-2 spaced-repetition schedule update.
package srs

import (
	"errors"
	"math"
	"time"

	"github.com/vocabdeck/vocabdeck/internal/models"
)

// ErrInvalidQuality is returned when the quality rating is outside [0,5].
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

const minEaseFactor = 1.3

// Quality ratings:
// 0=complete blackout, 1=wrong but familiar, 2=wrong but felt easy,
// 3=right with difficulty, 4=right with hesitation, 5=perfect recall.
const (
	QualityBlackout   = 0
	QualityWrong      = 1
	QualityWrongEasy  = 2
	QualityDifficult  = 3
	QualityHesitation = 4
	QualityPerfect    = 5
)

// Apply returns a copy of card with its scheduling state advanced one SM-2
// step for the given quality rating. now is the only time source consulted:
// last_reviewed is set to now and next_review to now plus the new interval
// in exact 24-hour days. The input card is never mutated.
func Apply(card models.Card, quality int, now time.Time) (models.Card, error) {
	if quality < 0 || quality > 5 {
		return models.Card{}, ErrInvalidQuality
	}

	if quality >= QualityDifficult {
		// The first two successful intervals are fixed; after that the
		// interval grows by the ease factor as it was before this step.
		switch card.Repetitions {
		case 0:
			card.IntervalDays = 1
		case 1:
			card.IntervalDays = 6
		default:
			card.IntervalDays = int(math.Round(float64(card.IntervalDays) * card.EaseFactor))
		}
		card.Repetitions++
	} else {
		card.Repetitions = 0
		card.IntervalDays = 1
	}

	// Ease update happens in both branches, so a lapse still slows future growth.
	ef := card.EaseFactor + 0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02)
	if ef < minEaseFactor {
		ef = minEaseFactor
	}
	card.EaseFactor = ef

	reviewed := now
	card.LastReviewed = &reviewed
	card.NextReview = now.Add(time.Duration(card.IntervalDays) * 24 * time.Hour)
	return card, nil
}
