package services

import "testing"

func TestParseFlashcards_JSON(t *testing.T) {
	raw := "Here are your flashcards:\n```json\n" +
		`[{"question": "What is Go?", "answer": "A language", "difficulty": "easy"},
		  {"question": "What is a goroutine?", "answer": "A lightweight thread"}]` +
		"\n```\nLet me know if you need more."

	cards := ParseFlashcards(raw)

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Question != "What is Go?" || cards[0].Answer != "A language" {
		t.Errorf("Unexpected first card: %+v", cards[0])
	}
	if cards[0].Difficulty != "easy" {
		t.Errorf("Expected difficulty 'easy', got %q", cards[0].Difficulty)
	}
	if cards[1].Difficulty != "medium" {
		t.Errorf("Expected missing difficulty to default to 'medium', got %q", cards[1].Difficulty)
	}
}

func TestParseFlashcards_DropsIncomplete(t *testing.T) {
	raw := `[{"question": "Q1", "answer": "A1"},
		{"question": "", "answer": "A2"},
		{"question": "Q3", "answer": "  "},
		{"question": "Q4"}]`

	cards := ParseFlashcards(raw)

	if len(cards) != 1 {
		t.Fatalf("Expected 1 surviving card, got %d", len(cards))
	}
	if cards[0].Question != "Q1" {
		t.Errorf("Expected Q1 to survive, got %q", cards[0].Question)
	}
}

func TestParseFlashcards_NormalizesDifficulty(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"easy", "easy"},
		{"HARD", "hard"},
		{" Medium ", "medium"},
		{"extreme", "medium"},
		{"", "medium"},
	}

	for _, tc := range tests {
		raw := `[{"question": "Q", "answer": "A", "difficulty": "` + tc.input + `"}]`
		cards := ParseFlashcards(raw)
		if len(cards) != 1 {
			t.Fatalf("difficulty %q: expected 1 card, got %d", tc.input, len(cards))
		}
		if cards[0].Difficulty != tc.expected {
			t.Errorf("difficulty %q: expected %q, got %q", tc.input, tc.expected, cards[0].Difficulty)
		}
	}
}

func TestParseFlashcards_NotJSON(t *testing.T) {
	cards := ParseFlashcards("I could not generate flashcards for this text.")
	if len(cards) != 0 {
		t.Errorf("Expected no cards from a prose reply, got %d", len(cards))
	}
}

func TestParseFlashcards_TaggedFallback(t *testing.T) {
	raw := `Q: What is a pointer?
A: A variable holding an address
D: easy
---
Q: What is a slice?
A: A view over an array
---
Q: Missing answer block
D: hard`

	cards := ParseFlashcards(raw)

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards from tagged reply, got %d", len(cards))
	}
	if cards[0].Difficulty != "easy" {
		t.Errorf("Expected difficulty 'easy', got %q", cards[0].Difficulty)
	}
	if cards[1].Difficulty != "medium" {
		t.Errorf("Expected default difficulty 'medium', got %q", cards[1].Difficulty)
	}
}

func TestParseQuizQuestions_JSON(t *testing.T) {
	raw := "Sure! ```json\n" +
		`[{"question": "Pick one", "options": ["a", "b", "c", "d"], "correctAnswer": "b"}]` +
		"\n```"

	questions := ParseQuizQuestions(raw)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(questions))
	}
	if questions[0].CorrectAnswer != "b" {
		t.Errorf("Expected correctAnswer 'b', got %q", questions[0].CorrectAnswer)
	}
}

func TestParseQuizQuestions_Validation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			"correct answer not among options",
			`[{"question": "Q", "options": ["a", "b", "c", "d"], "correctAnswer": "e"}]`,
		},
		{
			"three options",
			`[{"question": "Q", "options": ["a", "b", "c"], "correctAnswer": "a"}]`,
		},
		{
			"five options",
			`[{"question": "Q", "options": ["a", "b", "c", "d", "e"], "correctAnswer": "a"}]`,
		},
		{
			"empty question",
			`[{"question": " ", "options": ["a", "b", "c", "d"], "correctAnswer": "a"}]`,
		},
		{
			"case mismatch in correct answer",
			`[{"question": "Q", "options": ["a", "b", "c", "d"], "correctAnswer": "A"}]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if questions := ParseQuizQuestions(tc.raw); len(questions) != 0 {
				t.Errorf("Expected question to be dropped, got %d", len(questions))
			}
		})
	}
}

func TestParseQuizQuestions_KeepsValidDropsInvalid(t *testing.T) {
	raw := `[
		{"question": "Good", "options": ["a", "b", "c", "d"], "correctAnswer": "d"},
		{"question": "Bad", "options": ["a", "b"], "correctAnswer": "a"}
	]`

	questions := ParseQuizQuestions(raw)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(questions))
	}
	if questions[0].Question != "Good" {
		t.Errorf("Expected the valid question to survive, got %q", questions[0].Question)
	}
}

func TestParseQuizQuestions_TaggedFallback(t *testing.T) {
	raw := `Q: Which keyword declares a constant?
O1: var
O2: const
O3: let
O4: def
C: 2
E: const declares a compile-time constant.
D: easy
---
Q: Bad index
O1: a
O2: b
O3: c
O4: d
C: 5
---
Q: Missing options
O1: a
O2: b
C: 1`

	questions := ParseQuizQuestions(raw)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question from tagged reply, got %d", len(questions))
	}
	if questions[0].CorrectAnswer != "const" {
		t.Errorf("Expected correct answer 'const', got %q", questions[0].CorrectAnswer)
	}
	if len(questions[0].Options) != 4 {
		t.Errorf("Expected 4 options, got %d", len(questions[0].Options))
	}
}

func TestParseQuizQuestions_NotParseable(t *testing.T) {
	if questions := ParseQuizQuestions("not json at all"); len(questions) != 0 {
		t.Errorf("Expected no questions, got %d", len(questions))
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{"bare array", `[1, 2]`, `[1, 2]`, true},
		{"wrapped in prose", `Here: [1, 2] done.`, `[1, 2]`, true},
		{"greedy span", `[a] and [b]`, `[a] and [b]`, true},
		{"no brackets", "nothing here", "", false},
		{"reversed brackets", "] [", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSONArray(tc.raw)
			if ok != tc.ok {
				t.Fatalf("Expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
