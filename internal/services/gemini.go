package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"studypal-backend/internal/models"
)

const summaryCacheTTL = 24 * time.Hour

// CompletionError marks a failed round-trip to the model API. It is distinct
// from an empty parse result: the gateway never reached a usable reply at all.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string { return fmt.Sprintf("model completion failed: %v", e.Err) }

func (e *CompletionError) Unwrap() error { return e.Err }

// GenerationError means the model replied but nothing usable survived
// parsing. The client should retry rather than treat it as a server fault.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string { return e.Message }

// GeminiService is the completion gateway: the single boundary between this
// process and the external model. Constructed once at startup and injected
// into every call site.
type GeminiService struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	redis    *redis.Client
	rateChan chan struct{} // Token bucket
}

func NewGeminiService(apiKey string, concurrentReqs int, redisClient *redis.Client) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SetTemperature(0.3)
	model.SetTopP(0.95)

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:   client,
		model:    model,
		redis:    redisClient,
		rateChan: rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Complete sends one prompt and returns the model's raw text reply.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", &CompletionError{Err: err}
	}
	defer s.releaseRate()

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &CompletionError{Err: err}
	}

	return extractText(resp), nil
}

// GenerateFlashcards asks the model for count cards from text and returns
// whatever survives validation, which may be fewer than asked or none.
func (s *GeminiService) GenerateFlashcards(ctx context.Context, text string, count int) ([]models.Flashcard, error) {
	excerpt := TruncateForPrompt(text, FlashcardContextLimit)

	raw, err := s.Complete(ctx, BuildFlashcardPrompt(excerpt, count))
	if err != nil {
		return nil, err
	}

	cards := ParseFlashcards(raw)
	if len(cards) > count && count > 0 {
		cards = cards[:count]
	}
	return cards, nil
}

// GenerateQuiz asks the model for numQuestions multiple-choice questions.
func (s *GeminiService) GenerateQuiz(ctx context.Context, text string, numQuestions int) ([]models.QuizQuestion, error) {
	excerpt := TruncateForPrompt(text, QuizContextLimit)

	raw, err := s.Complete(ctx, BuildQuizPrompt(excerpt, numQuestions))
	if err != nil {
		return nil, err
	}

	return ParseQuizQuestions(raw), nil
}

// Summarize returns a prose summary of the document text, cached per
// document so repeated requests skip the model round-trip.
func (s *GeminiService) Summarize(ctx context.Context, documentID uuid.UUID, text string) (string, error) {
	cacheKey := "summary:doc:" + documentID.String()
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		return cached, nil
	}

	excerpt := TruncateForPrompt(text, SummaryContextLimit)

	summary, err := s.Complete(ctx, BuildSummaryPrompt(excerpt))
	if err != nil {
		return "", err
	}

	summary = strings.TrimSpace(summary)
	if summary != "" {
		s.redis.Set(ctx, cacheKey, summary, summaryCacheTTL)
	}

	return summary, nil
}

// Explain returns an educational explanation of concept grounded in text.
func (s *GeminiService) Explain(ctx context.Context, concept, text string) (string, error) {
	excerpt := TruncateForPrompt(text, ExplainContextLimit)

	explanation, err := s.Complete(ctx, BuildExplainPrompt(concept, excerpt))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(explanation), nil
}

// Chat answers question using only the document text as context.
func (s *GeminiService) Chat(ctx context.Context, question, text string) (string, error) {
	excerpt := TruncateForPrompt(text, ChatContextLimit)

	answer, err := s.Complete(ctx, BuildChatPrompt(question, excerpt))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
