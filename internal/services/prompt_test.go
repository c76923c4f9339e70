package services

import (
	"strings"
	"testing"
)

func TestTruncateForPrompt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		expected string
	}{
		{"under limit", "short", 10, "short"},
		{"at limit", "exact", 5, "exact"},
		{"over limit", "truncate me", 8, "truncate"},
		{"zero limit returns all", "keep everything", 0, "keep everything"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForPrompt(tc.text, tc.limit); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBuildFlashcardPrompt(t *testing.T) {
	prompt := BuildFlashcardPrompt("cell biology notes", 12)

	if !strings.Contains(prompt, "exactly 12 flashcards") {
		t.Error("Expected prompt to embed the requested count")
	}
	if !strings.Contains(prompt, `"""`) {
		t.Error("Expected excerpt to be fenced in triple quotes")
	}
	if !strings.Contains(prompt, "cell biology notes") {
		t.Error("Expected prompt to embed the excerpt")
	}
	if !strings.Contains(prompt, "JSON array") {
		t.Error("Expected prompt to demand a JSON array")
	}
}

func TestBuildQuizPrompt(t *testing.T) {
	prompt := BuildQuizPrompt("history excerpt", 5)

	if !strings.Contains(prompt, "exactly 5 UNIQUE multiple-choice questions") {
		t.Error("Expected prompt to embed the question count")
	}
	if !strings.Contains(prompt, "correctAnswer") {
		t.Error("Expected prompt to name the correctAnswer field")
	}
	if !strings.Contains(prompt, "history excerpt") {
		t.Error("Expected prompt to embed the excerpt")
	}
}

func TestBuildChatPrompt(t *testing.T) {
	prompt := BuildChatPrompt("What is mitosis?", "the document body")

	if !strings.Contains(prompt, `"What is mitosis?"`) {
		t.Error("Expected the question to be quoted in the prompt")
	}
	if !strings.Contains(prompt, "the document body") {
		t.Error("Expected prompt to embed the excerpt")
	}
}

func TestBuildExplainPrompt(t *testing.T) {
	prompt := BuildExplainPrompt("entropy", "thermodynamics text")

	if !strings.Contains(prompt, `"entropy"`) {
		t.Error("Expected the concept to be quoted in the prompt")
	}
	if !strings.Contains(prompt, "thermodynamics text") {
		t.Error("Expected prompt to embed the excerpt")
	}
}

func TestBuildTaggedPrompts(t *testing.T) {
	flashPrompt := BuildTaggedFlashcardPrompt("notes", 3)
	if !strings.Contains(flashPrompt, "Q:") || !strings.Contains(flashPrompt, `"---"`) {
		t.Error("Expected tagged flashcard prompt to describe the Q:/A: format with --- separators")
	}

	quizPrompt := BuildTaggedQuizPrompt("notes", 3)
	for _, tag := range []string{"O1:", "O2:", "O3:", "O4:", "C:"} {
		if !strings.Contains(quizPrompt, tag) {
			t.Errorf("Expected tagged quiz prompt to describe the %s tag", tag)
		}
	}
}
