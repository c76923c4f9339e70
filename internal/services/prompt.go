package services

import (
	"fmt"
	"strings"
)

// Per-task character limits for the excerpt embedded in a prompt.
// Truncation is a hard cutoff; cutting mid-sentence is expected.
const (
	FlashcardContextLimit       = 8000
	SummaryContextLimit         = 8000
	ExplainContextLimit         = 8000
	ChatContextLimit            = 6000
	QuizContextLimit            = 12000
	TaggedFlashcardContextLimit = 15000
)

// TruncateForPrompt applies a hard character cutoff to an excerpt.
func TruncateForPrompt(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit]
}

// writeExcerpt embeds the excerpt inside a triple-quote block so the
// document's own content cannot be misread as instructions.
func writeExcerpt(b *strings.Builder, label, excerpt string) {
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(":\n\"\"\"\n")
	b.WriteString(excerpt)
	b.WriteString("\n\"\"\"\n")
}

func BuildFlashcardPrompt(excerpt string, count int) string {
	var b strings.Builder

	b.WriteString("You are an expert teacher.\n\n")
	b.WriteString(fmt.Sprintf("Generate exactly %d flashcards from the text below.\n\n", count))
	b.WriteString("Rules:\n")
	b.WriteString("- Question-answer based\n")
	b.WriteString("- Clear and concise\n")
	b.WriteString("- No repetition\n")
	b.WriteString("- Return ONLY a valid JSON array, no markdown, no explanation\n\n")
	b.WriteString("JSON schema per flashcard:\n")
	b.WriteString(`{"question": "string", "answer": "string", "difficulty": "easy"|"medium"|"hard"}` + "\n")

	writeExcerpt(&b, "TEXT", excerpt)

	return b.String()
}

func BuildQuizPrompt(excerpt string, numQuestions int) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor.\n\n")
	b.WriteString(fmt.Sprintf("Generate exactly %d UNIQUE multiple-choice questions based ONLY on the document below.\n\n", numQuestions))
	b.WriteString("Rules:\n")
	b.WriteString("- Questions must test understanding, not copy sentences\n")
	b.WriteString("- Exactly 4 meaningful options per question\n")
	b.WriteString("- Only ONE correct answer, repeated verbatim in correctAnswer\n")
	b.WriteString("- Do NOT repeat questions\n")
	b.WriteString("- Return ONLY a valid JSON array, no markdown, no explanation\n\n")
	b.WriteString("JSON schema per question:\n")
	b.WriteString(`{"question": "string", "options": ["string", "string", "string", "string"], "correctAnswer": "one option exactly"}` + "\n")

	writeExcerpt(&b, "DOCUMENT", excerpt)

	return b.String()
}

func BuildSummaryPrompt(excerpt string) string {
	var b strings.Builder

	b.WriteString("Provide a concise summary of the following text, highlighting the key concepts, main ideas, and important points.\n")
	b.WriteString("Keep the summary clear and structured.\n")

	writeExcerpt(&b, "TEXT", excerpt)

	return b.String()
}

func BuildExplainPrompt(concept, excerpt string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Explain the concept of %q based on the following context.\n", concept))
	b.WriteString("Provide a clear, educational explanation that's easy to understand.\n")
	b.WriteString("Include examples if relevant.\n")

	writeExcerpt(&b, "CONTEXT", excerpt)

	return b.String()
}

func BuildChatPrompt(question, excerpt string) string {
	var b strings.Builder

	b.WriteString("You are an AI tutor.\n\n")
	b.WriteString("Answer the user's question using ONLY the document content.\n")
	b.WriteString("Be clear, friendly, and educational.\n")
	b.WriteString("If the answer is not in the document, say so clearly.\n")

	writeExcerpt(&b, "DOCUMENT", excerpt)

	b.WriteString(fmt.Sprintf("\nUSER QUESTION:\n%q\n", question))

	return b.String()
}

// BuildTaggedFlashcardPrompt asks for the line-tagged dialect instead of JSON.
// It exists as the fallback prompt format for models that mangle JSON.
func BuildTaggedFlashcardPrompt(excerpt string, count int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate exactly %d educational flashcards from the following text.\n\n", count))
	b.WriteString("Format each flashcard as:\n")
	b.WriteString("Q: [Clear, specific question]\n")
	b.WriteString("A: [Concise, accurate answer]\n")
	b.WriteString("D: [Difficulty level: easy, medium, or hard]\n\n")
	b.WriteString("Separate each flashcard with \"---\". Return nothing else.\n")

	writeExcerpt(&b, "Text", excerpt)

	return b.String()
}

// BuildTaggedQuizPrompt is the tagged-dialect counterpart of BuildQuizPrompt.
func BuildTaggedQuizPrompt(excerpt string, numQuestions int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate exactly %d multiple choice questions.\n\n", numQuestions))
	b.WriteString("Format:\n")
	b.WriteString("Q: Question\n")
	b.WriteString("O1: Option 1\n")
	b.WriteString("O2: Option 2\n")
	b.WriteString("O3: Option 3\n")
	b.WriteString("O4: Option 4\n")
	b.WriteString("C: Correct option number (1-4)\n")
	b.WriteString("E: Short explanation\n")
	b.WriteString("D: easy | medium | hard\n\n")
	b.WriteString("Separate questions with \"---\". Return nothing else.\n")

	writeExcerpt(&b, "Text", excerpt)

	return b.String()
}
