package services

import (
	"strings"
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		size     int
		expected []string
	}{
		{"even split", "a b c d", 2, []string{"a b", "c d"}},
		{"truncated last chunk", "a b c", 2, []string{"a b", "c"}},
		{"single chunk", "one two three", 10, []string{"one two three"}},
		{"collapses whitespace runs", "a\t\tb\n\nc   d", 2, []string{"a b", "c d"}},
		{"empty text", "", 2, nil},
		{"whitespace only", "  \n\t  ", 2, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks := ChunkText(tc.text, tc.size)

			if len(chunks) != len(tc.expected) {
				t.Fatalf("Expected %d chunks, got %d", len(tc.expected), len(chunks))
			}
			for i, c := range chunks {
				if c.Content != tc.expected[i] {
					t.Errorf("Chunk %d: expected %q, got %q", i, tc.expected[i], c.Content)
				}
				if c.ChunkIndex != i {
					t.Errorf("Chunk %d: expected index %d, got %d", i, i, c.ChunkIndex)
				}
			}
		})
	}
}

func TestChunkText_DefaultSize(t *testing.T) {
	words := make([]string, DefaultChunkSize+1)
	for i := range words {
		words[i] = "w"
	}

	chunks := ChunkText(strings.Join(words, " "), 0)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks with default size, got %d", len(chunks))
	}
	if got := len(strings.Fields(chunks[0].Content)); got != DefaultChunkSize {
		t.Errorf("Expected first chunk of %d words, got %d", DefaultChunkSize, got)
	}
}

func TestChunkText_RoundTrip(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog again and again"

	chunks := ChunkText(text, 3)

	var parts []string
	for _, c := range chunks {
		parts = append(parts, c.Content)
	}
	rejoined := strings.Join(parts, " ")

	if rejoined != text {
		t.Errorf("Expected joined chunks to reproduce word sequence.\nwant: %q\ngot:  %q", text, rejoined)
	}
}
