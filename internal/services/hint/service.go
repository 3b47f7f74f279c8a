// Package hint resolves a hint for a (domain, word) pair. Resolution never
// fails: a curated hint wins, then the cache, then a generated hint, and
// finally the domain's own description.
package hint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-4o-mini"
	requestTimeout = 6 * time.Second

	// minHintLength rejects generated hints too short to be useful
	minHintLength = 5
)

// Generator produces a hint for a word, typically via an LLM API. A nil
// generator disables generation entirely.
type Generator interface {
	Generate(ctx context.Context, domain, word string) (string, error)
}

// Service resolves hints through the curated set, the cache, and an optional
// generator, in that order.
type Service struct {
	store     storage.Store
	generator Generator
	clock     clock.Clock
	logger    *slog.Logger

	mu      sync.RWMutex
	curated map[string]map[string]string
}

func NewService(store storage.Store, generator Generator, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		clock:     clk,
		logger:    logger,
		curated:   make(map[string]map[string]string),
	}
}

// LoadCuratedFile reads a JSON file mapping domain -> word -> hint text
func (s *Service) LoadCuratedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading hints file: %w", err)
	}

	var curated map[string]map[string]string
	if err := json.Unmarshal(raw, &curated); err != nil {
		return fmt.Errorf("parsing hints file: %w", err)
	}
	return s.LoadCurated(curated)
}

// LoadCurated replaces the curated hint set, normalizing keys to lowercase
func (s *Service) LoadCurated(curated map[string]map[string]string) error {
	normalized := make(map[string]map[string]string, len(curated))
	total := 0
	for domain, hints := range curated {
		byWord := make(map[string]string, len(hints))
		for word, text := range hints {
			byWord[strings.ToLower(word)] = text
			total++
		}
		normalized[strings.ToLower(domain)] = byWord
	}

	s.mu.Lock()
	s.curated = normalized
	s.mu.Unlock()

	s.logger.Info("curated hints loaded", "domains", len(normalized), "hints", total)
	return nil
}

// HintFor resolves the hint for a word. The fallback is returned when no
// curated, cached, or generated hint is available, so callers always get a
// usable string.
func (s *Service) HintFor(ctx context.Context, domain, word, fallback string) string {
	domain = strings.ToLower(domain)
	word = strings.ToLower(word)

	if text, ok := s.curatedHint(domain, word); ok {
		return text
	}

	cached, err := s.store.GetHint(ctx, domain, word)
	if err == nil {
		return cached.Text
	}
	if !errors.Is(err, model.ErrHintNotFound) {
		s.logger.Warn("hint cache read failed", "domain", domain, "error", err)
	}

	if s.generator != nil {
		text, err := s.generator.Generate(ctx, domain, word)
		if err != nil {
			s.logger.Warn("hint generation failed", "domain", domain, "error", err)
		} else if len(strings.TrimSpace(text)) >= minHintLength {
			s.cache(ctx, domain, word, text)
			return text
		}
	}

	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("A well-known %s name", domain)
}

func (s *Service) curatedHint(domain, word string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byWord, ok := s.curated[domain]
	if !ok {
		return "", false
	}
	text, ok := byWord[word]
	return text, ok
}

func (s *Service) cache(ctx context.Context, domain, word, text string) {
	err := s.store.SaveHint(ctx, &model.Hint{
		Domain:    domain,
		Word:      word,
		Text:      text,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("hint cache write failed", "domain", domain, "error", err)
	}
}

// OpenAIGenerator asks the OpenAI chat completions API for a one-line hint
// that does not contain the word itself.
type OpenAIGenerator struct {
	apiKey string
	client *http.Client
}

func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		apiKey: apiKey,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, domain, word string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a single short hint (under 15 words) for the word %q from the category %q. Do not use the word itself or any part of it.",
		word, domain,
	)
	body, err := json.Marshal(chatRequest{
		Model: openAIModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   60,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encoding hint request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building hint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling hint API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hint API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding hint response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("hint API returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
