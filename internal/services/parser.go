package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"studypal-backend/internal/models"
)

// The model is an untrusted, non-deterministic text source. Everything in
// this file is damage containment: malformed or partial replies degrade to a
// smaller or empty result set, and nothing here ever panics or returns an
// error. Callers decide whether an empty result is worth surfacing.

// ParseFlashcards extracts validated flashcards from a raw model reply.
// It tries the JSON-array dialect first and falls back to the line-tagged
// dialect when no JSON records survive. Cards missing a question or answer
// are dropped; unrecognized difficulties default to "medium".
func ParseFlashcards(raw string) []models.Flashcard {
	cards := parseJSONFlashcards(raw)
	if len(cards) == 0 {
		cards = parseTaggedFlashcards(raw)
	}
	return cards
}

// ParseQuizQuestions extracts validated quiz questions from a raw model
// reply. A question survives only with a non-empty question string, exactly
// 4 options, and a correctAnswer that equals one option byte for byte.
func ParseQuizQuestions(raw string) []models.QuizQuestion {
	questions := parseJSONQuizQuestions(raw)
	if len(questions) == 0 {
		questions = parseTaggedQuizQuestions(raw)
	}
	return questions
}

func parseJSONFlashcards(raw string) []models.Flashcard {
	payload, ok := extractJSONArray(raw)
	if !ok {
		return nil
	}

	var decoded []struct {
		Question   string `json:"question"`
		Answer     string `json:"answer"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil
	}

	var cards []models.Flashcard
	for _, d := range decoded {
		question := strings.TrimSpace(d.Question)
		answer := strings.TrimSpace(d.Answer)
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, models.Flashcard{
			Question:   question,
			Answer:     answer,
			Difficulty: normalizeDifficulty(d.Difficulty),
		})
	}
	return cards
}

func parseJSONQuizQuestions(raw string) []models.QuizQuestion {
	payload, ok := extractJSONArray(raw)
	if !ok {
		return nil
	}

	var decoded []models.QuizQuestion
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil
	}

	var questions []models.QuizQuestion
	for _, q := range decoded {
		if !isValidQuizQuestion(q) {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

// extractJSONArray finds the greedy bracket span of a reply: the first "["
// through the last "]". The model routinely wraps its JSON in prose or
// markdown fences, so anything outside the brackets is ignored.
func extractJSONArray(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func isValidQuizQuestion(q models.QuizQuestion) bool {
	if strings.TrimSpace(q.Question) == "" {
		return false
	}
	if len(q.Options) != 4 {
		return false
	}
	for _, opt := range q.Options {
		if q.CorrectAnswer == opt {
			return true
		}
	}
	return false
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return "easy"
	case "hard":
		return "hard"
	default:
		return "medium"
	}
}

// Tagged dialect: blocks separated by "---", one "Tag: value" line each.
// A block is discarded in full when a required tag is missing.

const blockSeparator = "---"

func parseTaggedFlashcards(raw string) []models.Flashcard {
	var cards []models.Flashcard

	for _, block := range strings.Split(raw, blockSeparator) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		question := taggedValue(block, "Q:")
		answer := taggedValue(block, "A:")
		if question == "" || answer == "" {
			continue
		}

		cards = append(cards, models.Flashcard{
			Question:   question,
			Answer:     answer,
			Difficulty: normalizeDifficulty(taggedValue(block, "D:")),
		})
	}

	return cards
}

func parseTaggedQuizQuestions(raw string) []models.QuizQuestion {
	var questions []models.QuizQuestion

	for _, block := range strings.Split(raw, blockSeparator) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		question := taggedValue(block, "Q:")
		if question == "" {
			continue
		}

		options := make([]string, 0, 4)
		for i := 1; i <= 4; i++ {
			opt := taggedValue(block, "O"+strconv.Itoa(i)+":")
			if opt == "" {
				break
			}
			options = append(options, opt)
		}
		if len(options) != 4 {
			continue
		}

		// C: is a 1-based option index
		correctIdx, err := strconv.Atoi(taggedValue(block, "C:"))
		if err != nil || correctIdx < 1 || correctIdx > 4 {
			continue
		}

		questions = append(questions, models.QuizQuestion{
			Question:      question,
			Options:       options,
			CorrectAnswer: options[correctIdx-1],
		})
	}

	return questions
}

// taggedValue returns the remainder of the first line starting with tag.
// The prefix match is case-sensitive.
func taggedValue(block, tag string) string {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, tag) {
			return strings.TrimSpace(line[len(tag):])
		}
	}
	return ""
}
