package services

import (
	"testing"

	"studypal-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{Question: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"},
		{Question: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "c"},
		{Question: "Q4", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "d"},
	}
}

func TestScoreQuiz(t *testing.T) {
	questions := sampleQuestions()

	score, results := ScoreQuiz(questions, []*string{strPtr("a"), strPtr("b"), strPtr("a"), nil})

	if score != 50 {
		t.Errorf("Expected score 50, got %d", score)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}

	expected := []bool{true, true, false, false}
	for i, r := range results {
		if r.IsCorrect != expected[i] {
			t.Errorf("Result %d: expected correct=%v, got %v", i, expected[i], r.IsCorrect)
		}
	}
	if results[3].SelectedAnswer != nil {
		t.Error("Expected nil selected answer for unanswered question")
	}
}

func TestScoreQuiz_Rounding(t *testing.T) {
	questions := sampleQuestions()[:3]

	score, _ := ScoreQuiz(questions, []*string{strPtr("a"), nil, nil})

	// 1/3 rounds to 33
	if score != 33 {
		t.Errorf("Expected score 33, got %d", score)
	}

	score, _ = ScoreQuiz(questions, []*string{strPtr("a"), strPtr("b"), nil})

	// 2/3 rounds to 67
	if score != 67 {
		t.Errorf("Expected score 67, got %d", score)
	}
}

func TestScoreQuiz_ShortAnswerArray(t *testing.T) {
	questions := sampleQuestions()

	score, results := ScoreQuiz(questions, []*string{strPtr("a")})

	if score != 25 {
		t.Errorf("Expected score 25, got %d", score)
	}
	if len(results) != 4 {
		t.Fatalf("Expected a result per question, got %d", len(results))
	}
	for i := 1; i < 4; i++ {
		if results[i].SelectedAnswer != nil {
			t.Errorf("Result %d: expected nil selected answer beyond submitted range", i)
		}
	}
}

func TestScoreQuiz_NilAnswers(t *testing.T) {
	score, results := ScoreQuiz(sampleQuestions(), nil)

	if score != 0 {
		t.Errorf("Expected score 0, got %d", score)
	}
	for i, r := range results {
		if r.IsCorrect {
			t.Errorf("Result %d: expected incorrect with no answers", i)
		}
	}
}

func TestScoreQuiz_NoQuestions(t *testing.T) {
	score, results := ScoreQuiz(nil, []*string{strPtr("a")})

	if score != 0 {
		t.Errorf("Expected score 0 for empty quiz, got %d", score)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Expected empty non-nil results, got %v", results)
	}
}

func TestScoreQuiz_WrongCaseNotCorrect(t *testing.T) {
	questions := sampleQuestions()[:1]

	score, _ := ScoreQuiz(questions, []*string{strPtr("A")})

	if score != 0 {
		t.Errorf("Expected exact match comparison, got score %d", score)
	}
}
