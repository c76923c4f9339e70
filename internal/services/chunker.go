package services

import (
	"strings"

	"studypal-backend/internal/models"
)

// DefaultChunkSize is the word count per chunk used for stored documents.
const DefaultChunkSize = 500

// ChunkText splits text on whitespace runs and emits consecutive
// non-overlapping windows of size words, the last window truncated.
// Joining the chunks back with single spaces reproduces the word sequence
// exactly; byte-for-byte round-trip is not guaranteed because whitespace
// runs collapse. A size of zero or less falls back to DefaultChunkSize.
func ChunkText(text string, size int) []models.Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []models.Chunk
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, models.Chunk{
			Content:    strings.Join(words[i:end], " "),
			ChunkIndex: len(chunks),
		})
	}

	return chunks
}
