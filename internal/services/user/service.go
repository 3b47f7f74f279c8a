// Package user manages anonymous identities and their public handles.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

// handlePattern constrains claimed handles: word characters, 3 to 15 long
var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,15}$`)

// Service creates users lazily and manages handle claims. Handles are
// unique case-insensitively and locked once set.
type Service struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(store storage.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// GetOrCreate resolves a user by ID, minting a new identity when the ID is
// empty or unknown. The returned flag reports whether a user was created.
func (s *Service) GetOrCreate(ctx context.Context, id model.UserID) (*model.User, bool, error) {
	if id != "" {
		existing, err := s.store.GetUser(ctx, id)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, false, fmt.Errorf("loading user: %w", err)
		}
	}

	created := &model.User{
		ID:        model.UserID(uuid.NewString()),
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.SaveUser(ctx, created); err != nil {
		return nil, false, fmt.Errorf("saving user: %w", err)
	}

	s.logger.Info("user created", "user_id", created.ID)
	return created, true, nil
}

// Get loads a user by ID
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.store.GetUser(ctx, id)
}

// Stats returns the user's lifetime stats, zero-valued before their first
// settled game.
func (s *Service) Stats(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	stats, err := s.store.GetUserStats(ctx, userID)
	if errors.Is(err, model.ErrStatsNotFound) {
		return model.NewUserStats(userID, s.clock.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user stats: %w", err)
	}
	return stats, nil
}

// Achievements lists the user's unlocked achievements
func (s *Service) Achievements(ctx context.Context, userID model.UserID) ([]*model.Achievement, error) {
	return s.store.ListAchievements(ctx, userID)
}

// NormalizeHandle strips a leading @ and validates the handle shape
func NormalizeHandle(raw string) (string, error) {
	handle := strings.TrimSpace(raw)
	handle = strings.TrimPrefix(handle, "@")
	if !handlePattern.MatchString(handle) {
		return "", model.ErrInvalidHandle
	}
	return handle, nil
}

// HandleAvailable reports whether a handle can still be claimed. The check
// is case-insensitive.
func (s *Service) HandleAvailable(ctx context.Context, raw string) (bool, error) {
	handle, err := NormalizeHandle(raw)
	if err != nil {
		return false, err
	}

	_, err = s.store.GetUserIDByHandle(ctx, strings.ToLower(handle))
	if errors.Is(err, model.ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking handle: %w", err)
	}
	return false, nil
}

// ClaimHandle sets the user's handle. The first claim wins and the handle
// is immutable afterwards; re-claiming the identical handle is a no-op.
func (s *Service) ClaimHandle(ctx context.Context, userID model.UserID, raw string) (*model.User, error) {
	handle, err := NormalizeHandle(raw)
	if err != nil {
		return nil, err
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if u.HasHandle() {
		if strings.EqualFold(u.Handle, handle) {
			return u, nil
		}
		return nil, model.ErrHandleLocked
	}

	normalized := strings.ToLower(handle)
	owner, err := s.store.GetUserIDByHandle(ctx, normalized)
	if err == nil && owner != userID {
		return nil, model.ErrHandleTaken
	}
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("checking handle: %w", err)
	}

	if err := s.store.SaveHandleIndex(ctx, normalized, userID); err != nil {
		return nil, fmt.Errorf("saving handle index: %w", err)
	}
	u.Handle = handle
	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	s.logger.Info("handle claimed", "user_id", userID, "handle", handle)
	return u, nil
}
