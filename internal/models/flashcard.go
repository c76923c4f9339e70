package models

import (
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
)

// FlashcardSet accumulates generated cards for one (user, document) pair.
// Generation appends to the existing set, it never overwrites earlier cards.
type FlashcardSet struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	CardCount  int       `json:"card_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type Flashcard struct {
	ID             uuid.UUID  `json:"id"`
	SetID          uuid.UUID  `json:"set_id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Difficulty     string     `json:"difficulty"` // "easy" | "medium" | "hard"
	ReviewCount    int        `json:"review_count"`
	IsStarred      bool       `json:"is_starred"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`

	// FSRS scheduling state
	Due            *time.Time `json:"due"`
	Stability      float64    `json:"stability"`
	FSRSDifficulty float64    `json:"fsrs_difficulty"`
	ElapsedDays    int        `json:"elapsed_days"`
	ScheduledDays  int        `json:"scheduled_days"`
	Reps           int        `json:"reps"`
	Lapses         int        `json:"lapses"`
	State          int        `json:"state"`
}

func (c *Flashcard) ToFSRSCard() fsrs.Card {
	card := fsrs.Card{
		Stability:     c.Stability,
		Difficulty:    c.FSRSDifficulty,
		ElapsedDays:   uint64(maxInt(c.ElapsedDays, 0)),
		ScheduledDays: uint64(maxInt(c.ScheduledDays, 0)),
		Reps:          uint64(maxInt(c.Reps, 0)),
		Lapses:        uint64(maxInt(c.Lapses, 0)),
		State:         fsrs.State(maxInt(c.State, 0)),
	}
	if c.Due != nil {
		card.Due = *c.Due
	}
	if c.LastReviewedAt != nil {
		card.LastReview = *c.LastReviewedAt
	}
	return card
}

func (c *Flashcard) ApplyFSRSCard(f fsrs.Card) {
	if !f.Due.IsZero() {
		due := f.Due
		c.Due = &due
	}
	c.Stability = f.Stability
	c.FSRSDifficulty = f.Difficulty
	c.ElapsedDays = int(f.ElapsedDays)
	c.ScheduledDays = int(f.ScheduledDays)
	c.Reps = int(f.Reps)
	c.Lapses = int(f.Lapses)
	c.State = int(f.State)
	if !f.LastReview.IsZero() {
		last := f.LastReview
		c.LastReviewedAt = &last
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type GenerateFlashcardsRequest struct {
	DocumentID uuid.UUID `json:"document_id"`
	Count      int       `json:"count"`
}

type ReviewCardRequest struct {
	Rating string `json:"rating"` // "again" | "hard" | "good" | "easy"
}
