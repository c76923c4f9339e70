package services

import (
	"math"

	"studypal-backend/internal/models"
)

// ScoreQuiz grades a submission against the stored questions. Answers
// correlate to questions by array index: answers[i] belongs to questions[i],
// a missing or nil entry counts as unanswered and is never correct.
// The score is the rounded percentage of correct answers; a quiz with no
// questions scores 0 with an empty breakdown.
func ScoreQuiz(questions []models.QuizQuestion, answers []*string) (int, []models.QuizResult) {
	results := make([]models.QuizResult, 0, len(questions))
	correct := 0

	for i, q := range questions {
		var selected *string
		if i < len(answers) {
			selected = answers[i]
		}

		isCorrect := selected != nil && *selected == q.CorrectAnswer
		if isCorrect {
			correct++
		}

		results = append(results, models.QuizResult{
			Question:       q.Question,
			SelectedAnswer: selected,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      isCorrect,
		})
	}

	score := 0
	if len(questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	}

	return score, results
}
