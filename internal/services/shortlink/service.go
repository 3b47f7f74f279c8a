// Package shortlink issues short share IDs that redirect to full URLs.
package shortlink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/dependencies/random"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

const (
	idLength   = 6
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxAttempts bounds ID collision retries before giving up
	maxAttempts = 5
)

// Service creates and resolves share links
type Service struct {
	store  storage.Store
	random random.Random
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(store storage.Store, rnd random.Random, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		random: rnd,
		clock:  clk,
		logger: logger,
	}
}

// Create issues a new short link for the target URL. Only absolute http and
// https targets are accepted. ID collisions retry with a fresh ID.
func (s *Service) Create(ctx context.Context, target string) (*model.ShortLink, error) {
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, model.ErrInvalidTarget
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := s.random.String(idLength, idAlphabet)

		_, err := s.store.GetShortLink(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrShortLinkNotFound) {
			return nil, fmt.Errorf("checking short link id: %w", err)
		}

		link := &model.ShortLink{
			ID:        id,
			Target:    target,
			CreatedAt: s.clock.Now(),
		}
		if err := s.store.SaveShortLink(ctx, link); err != nil {
			return nil, fmt.Errorf("saving short link: %w", err)
		}

		s.logger.Info("short link created", "link_id", id)
		return link, nil
	}
	return nil, fmt.Errorf("allocating short link id: exhausted %d attempts", maxAttempts)
}

// Resolve returns the target URL for a short link ID
func (s *Service) Resolve(ctx context.Context, id string) (*model.ShortLink, error) {
	return s.store.GetShortLink(ctx, id)
}
