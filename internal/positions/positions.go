// Package positions keeps one owner's job openings in memory and mirrors
// every change to the key-value store.
package positions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garnizeh/talentdesk/internal/metrics"
	"github.com/garnizeh/talentdesk/internal/storage"
	"github.com/garnizeh/talentdesk/pkg/models"
	"github.com/garnizeh/talentdesk/pkg/repository"
)

var ErrNotFound = errors.New("position not found")

// Store holds the positions of a single owner. It is not safe for
// concurrent use.
type Store struct {
	kv     repository.KeyValueStore
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
	items  []models.Position
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New loads the positions owned by ownerID. An owner without a collection
// (or with one that cannot be parsed) gets a copy of demo, persisted right
// away. An existing collection is used as is, even when empty.
func New(ctx context.Context, kv repository.KeyValueStore, ownerID string, demo []models.Position, logger *slog.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		kv:     kv,
		key:    storage.PositionsKey(ownerID),
		logger: logger.With(slog.String("owner_id", ownerID)),
		now:    time.Now,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	var items []models.Position
	found, err := storage.Load(ctx, kv, s.key, &items)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		metrics.ObserveCorruptState("positions")
		s.logger.Warn("positions: discarding unparsable collection", slog.Any("err", err))
		found = false
	case err != nil:
		return nil, err
	}

	if found {
		if items == nil {
			items = []models.Position{}
		}
		s.items = items
		return s, nil
	}

	seeded := cloneAll(demo)
	if err := storage.Save(ctx, kv, s.key, seeded); err != nil {
		return nil, fmt.Errorf("seed positions: %w", err)
	}
	s.items = seeded
	metrics.ObserveSeed("positions")
	s.logger.Info("positions: seeded demo collection", slog.Int("count", len(seeded)))

	return s, nil
}

// Add creates an active position with no candidates.
func (s *Store) Add(ctx context.Context, in models.PositionInput) (models.Position, error) {
	p := models.Position{
		ID:             s.newID(),
		Title:          in.Title,
		Category:       in.Category,
		Description:    in.Description,
		ExperienceMin:  in.ExperienceMin,
		ExperienceMax:  in.ExperienceMax,
		WorkType:       in.WorkType,
		Locations:      append([]string{}, in.Locations...),
		Priority:       in.Priority,
		CandidateCount: 0,
		Status:         models.PositionActive,
		Requirements:   append([]string{}, in.Requirements...),
		CreatedAt:      s.now().UTC(),
	}

	next := make([]models.Position, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, p)

	if err := s.commit(ctx, "add", next); err != nil {
		return models.Position{}, err
	}

	s.logger.Info("positions: added", slog.String("position_id", p.ID))
	return clone(p), nil
}

// Update merges upd into the position with the given id.
func (s *Store) Update(ctx context.Context, id string, upd models.PositionUpdate) (models.Position, error) {
	idx := s.index(id)
	if idx < 0 {
		metrics.ObservePositionMutation("update", "not_found")
		return models.Position{}, ErrNotFound
	}

	next := cloneAll(s.items)
	upd.Apply(&next[idx])

	if err := s.commit(ctx, "update", next); err != nil {
		return models.Position{}, err
	}

	return clone(next[idx]), nil
}

// Remove deletes the position with the given id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	next := make([]models.Position, 0, len(s.items))
	for _, p := range s.items {
		if p.ID != id {
			next = append(next, p)
		}
	}

	if err := s.commit(ctx, "remove", next); err != nil {
		return err
	}

	s.logger.Info("positions: removed", slog.String("position_id", id))
	return nil
}

// Get returns the position with the given id and whether it exists. It has no side effects.
func (s *Store) Get(id string) (models.Position, bool) {
	idx := s.index(id)
	if idx < 0 {
		return models.Position{}, false
	}
	return clone(s.items[idx]), true
}

// List returns the positions in stored order.
func (s *Store) List() []models.Position {
	return cloneAll(s.items)
}

// Search returns the positions whose title or category contains query,
// ignoring case. An empty query matches every position.
func (s *Store) Search(query string) []models.Position {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Position{}
	for _, p := range s.items {
		if q == "" || strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(string(p.Category)), q) {
			out = append(out, clone(p))
		}
	}
	return out
}

// Stats summarizes the collection in one pass without touching storage.
func (s *Store) Stats() models.PositionStats {
	var st models.PositionStats
	st.Total = len(s.items)
	for _, p := range s.items {
		if p.Status == models.PositionActive {
			st.Active++
		}
		if p.Priority == models.PriorityHigh {
			st.HighPriority++
		}
		st.TotalCandidates += p.CandidateCount
	}
	return st
}

// commit persists next and installs it only when the write succeeded.
func (s *Store) commit(ctx context.Context, op string, next []models.Position) error {
	if err := storage.Save(ctx, s.kv, s.key, next); err != nil {
		metrics.ObservePositionMutation(op, "error")
		s.logger.Error("positions: persist", slog.String("op", op), slog.Any("err", err))
		return err
	}

	s.items = next
	metrics.ObservePositionMutation(op, "ok")
	return nil
}

func (s *Store) index(id string) int {
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clone(p models.Position) models.Position {
	p.Locations = append([]string{}, p.Locations...)
	p.Requirements = append([]string{}, p.Requirements...)
	return p
}

func cloneAll(in []models.Position) []models.Position {
	out := make([]models.Position, len(in))
	for i, p := range in {
		out[i] = clone(p)
	}
	return out
}
