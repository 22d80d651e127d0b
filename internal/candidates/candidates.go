// Package candidates exposes the read side of one owner's applicant pool.
package candidates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/garnizeh/talentdesk/internal/metrics"
	"github.com/garnizeh/talentdesk/internal/storage"
	"github.com/garnizeh/talentdesk/pkg/models"
	"github.com/garnizeh/talentdesk/pkg/repository"
)

var ErrInvalidExperienceRange = errors.New("invalid experience range")

// Store holds the candidates of a single owner. It has no mutators.
type Store struct {
	items []models.Candidate
}

// New loads the candidates owned by ownerID, seeding and persisting demo
// when the owner has no readable collection yet.
func New(ctx context.Context, kv repository.KeyValueStore, ownerID string, demo []models.Candidate, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("owner_id", ownerID))
	key := storage.CandidatesKey(ownerID)

	var items []models.Candidate
	found, err := storage.Load(ctx, kv, key, &items)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		metrics.ObserveCorruptState("candidates")
		logger.Warn("candidates: discarding unparsable collection", slog.Any("err", err))
		found = false
	case err != nil:
		return nil, err
	}

	if found {
		if items == nil {
			items = []models.Candidate{}
		}
		return &Store{items: items}, nil
	}

	seeded := append([]models.Candidate{}, demo...)
	if err := storage.Save(ctx, kv, key, seeded); err != nil {
		return nil, fmt.Errorf("seed candidates: %w", err)
	}
	metrics.ObserveSeed("candidates")
	logger.Info("candidates: seeded demo collection", slog.Int("count", len(seeded)))

	return &Store{items: seeded}, nil
}

// List returns every candidate in stored order.
func (s *Store) List() []models.Candidate {
	return append([]models.Candidate{}, s.items...)
}

// ByPosition returns the candidates linked to positionID in stored order.
func (s *Store) ByPosition(positionID string) []models.Candidate {
	out := []models.Candidate{}
	for _, c := range s.items {
		if c.PositionID == positionID {
			out = append(out, c)
		}
	}
	return out
}

// CountByPosition equals len(ByPosition(positionID)); it is independent of Position.CandidateCount.
func (s *Store) CountByPosition(positionID string) int {
	return len(s.ByPosition(positionID))
}

// Filter returns the candidates matching every non-empty field of f.
// Location matches case-insensitively as a substring.
func (s *Store) Filter(f models.CandidateFilter) ([]models.Candidate, error) {
	var (
		checkExp bool
		lo, hi   int
	)
	if f.Experience != "" {
		var err error
		lo, hi, err = ParseExperienceRange(f.Experience)
		if err != nil {
			return nil, err
		}
		checkExp = true
	}
	loc := strings.ToLower(f.Location)

	out := []models.Candidate{}
	for _, c := range s.items {
		if f.PositionID != "" && c.PositionID != f.PositionID {
			continue
		}
		if checkExp && (c.Experience < lo || c.Experience > hi) {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(c.Location), loc) {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}

// ParseExperienceRange parses an inclusive "min-max" range of years.
func ParseExperienceRange(r string) (int, int, error) {
	minStr, maxStr, ok := strings.Cut(r, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExperienceRange, r)
	}

	lo, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExperienceRange, r)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(maxStr))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExperienceRange, r)
	}
	if lo < 0 || lo > hi {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidExperienceRange, r)
	}

	return lo, hi, nil
}
