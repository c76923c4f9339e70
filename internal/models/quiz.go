package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	DocumentID    uuid.UUID       `json:"document_id"`
	QuestionsJSON json.RawMessage `json:"questions"`
	QuestionCount int             `json:"question_count"`
	Score         int             `json:"score"`
	ResultsJSON   json.RawMessage `json:"results,omitempty"`
	IsSubmitted   bool            `json:"is_submitted"`
	CreatedAt     time.Time       `json:"created_at"`
}

// QuizQuestion requires exactly 4 options and a correctAnswer that matches
// one of them byte for byte. The parser drops anything else.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuizResult is the per-question outcome of a submission, in question order.
type QuizResult struct {
	Question       string  `json:"question"`
	SelectedAnswer *string `json:"selectedAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
}

type GenerateQuizRequest struct {
	DocumentID   uuid.UUID `json:"document_id"`
	NumQuestions int       `json:"num_questions"`
}

// SubmitQuizRequest carries answers correlated to questions by array index.
// A nil entry means the question was left unanswered.
type SubmitQuizRequest struct {
	Answers []*string `json:"answers"`
}
