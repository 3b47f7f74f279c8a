// Package words owns the word pools and deterministic word selection.
package words

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

// HistorySize is how many recently served words are remembered per
// (user, domain) and skipped on selection.
const HistorySize = 15

// Domain is one themed word pool
type Domain struct {
	Hint  string   `json:"hint"`
	Words []string `json:"words"`
}

// DomainInfo is the listing view of a domain
type DomainInfo struct {
	Key       string `json:"key"`
	Hint      string `json:"hint"`
	WordCount int    `json:"wordCount"`
}

// Candidate is one (domain, word) pair, used for daily puzzle selection
type Candidate struct {
	Domain string
	Word   string
}

// Service selects words deterministically per user and day, skipping words
// the user has seen recently.
type Service struct {
	store  storage.Store
	logger *slog.Logger

	mu      sync.RWMutex
	domains map[string]Domain
}

func NewService(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		domains: make(map[string]Domain),
	}
}

// LoadFile reads a JSON file mapping domain keys to word pools
func (s *Service) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading domains file: %w", err)
	}

	var domains map[string]Domain
	if err := json.Unmarshal(raw, &domains); err != nil {
		return fmt.Errorf("parsing domains file: %w", err)
	}
	return s.Load(domains)
}

// Load replaces the domain pools. Keys and words are normalized to lowercase.
func (s *Service) Load(domains map[string]Domain) error {
	normalized := make(map[string]Domain, len(domains))
	for key, domain := range domains {
		words := make([]string, 0, len(domain.Words))
		for _, w := range domain.Words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				words = append(words, w)
			}
		}
		normalized[strings.ToLower(strings.TrimSpace(key))] = Domain{
			Hint:  domain.Hint,
			Words: words,
		}
	}

	s.mu.Lock()
	s.domains = normalized
	s.mu.Unlock()

	s.logger.Info("word domains loaded", "domains", len(normalized))
	return nil
}

// Domains lists the available domains in key order
func (s *Service) Domains() []DomainInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]DomainInfo, 0, len(s.domains))
	for key, domain := range s.domains {
		infos = append(infos, DomainInfo{
			Key:       key,
			Hint:      domain.Hint,
			WordCount: len(domain.Words),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Key < infos[j].Key
	})
	return infos
}

// Domain returns one domain's pool
func (s *Service) Domain(key string) (Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	domain, ok := s.domains[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Domain{}, model.ErrUnknownDomain
	}
	return domain, nil
}

// Candidates returns every (domain, word) pair across all pools, in a stable
// order independent of map iteration.
func (s *Service) Candidates() []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.domains))
	for key := range s.domains {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var candidates []Candidate
	for _, key := range keys {
		for _, word := range s.domains[key].Words {
			candidates = append(candidates, Candidate{Domain: key, Word: word})
		}
	}
	return candidates
}

// Select picks a word from the domain for the user. Selection is
// deterministic for a given (user, dateSeed) pair: the pool is shuffled with
// a seed derived from both, and the first word not in the user's recent
// history wins. If every word is in history the first shuffled word is
// served anyway. A preferred word that exists in the pool short-circuits
// selection. The chosen word is recorded in the user's history.
func (s *Service) Select(ctx context.Context, userID model.UserID, domainKey, preferred, dateSeed string) (string, error) {
	domainKey = strings.ToLower(strings.TrimSpace(domainKey))
	if domainKey == "" {
		return "", model.ErrEmptyDomain
	}

	domain, err := s.Domain(domainKey)
	if err != nil {
		return "", err
	}
	if len(domain.Words) == 0 {
		return "", model.ErrEmptyDomain
	}

	choice := ""
	if preferred != "" {
		preferred = strings.ToLower(strings.TrimSpace(preferred))
		for _, w := range domain.Words {
			if w == preferred {
				choice = w
				break
			}
		}
	}

	if choice == "" {
		shuffled := ShuffleDeterministic(domain.Words, fmt.Sprintf("%s:%s", userID, dateSeed))

		recent, err := s.store.GetWordHistory(ctx, userID, domainKey)
		if err != nil {
			return "", fmt.Errorf("loading word history: %w", err)
		}
		seen := make(map[string]struct{}, len(recent))
		for _, w := range recent {
			seen[w] = struct{}{}
		}

		choice = shuffled[0]
		for _, w := range shuffled {
			if _, ok := seen[w]; !ok {
				choice = w
				break
			}
		}
	}

	if err := s.remember(ctx, userID, domainKey, choice); err != nil {
		return "", err
	}
	return choice, nil
}

// remember pushes the word to the front of the user's history for the
// domain, deduplicating and trimming to HistorySize.
func (s *Service) remember(ctx context.Context, userID model.UserID, domainKey, word string) error {
	recent, err := s.store.GetWordHistory(ctx, userID, domainKey)
	if err != nil {
		return fmt.Errorf("loading word history: %w", err)
	}

	updated := make([]string, 0, len(recent)+1)
	updated = append(updated, word)
	for _, w := range recent {
		if w != word {
			updated = append(updated, w)
		}
	}
	if len(updated) > HistorySize {
		updated = updated[:HistorySize]
	}

	if err := s.store.SaveWordHistory(ctx, userID, domainKey, updated); err != nil {
		return fmt.Errorf("saving word history: %w", err)
	}
	return nil
}
