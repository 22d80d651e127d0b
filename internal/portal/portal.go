// Package portal ties the session to the position and candidate stores of
// whoever is signed in, and serializes access to them.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/garnizeh/talentdesk/internal/candidates"
	"github.com/garnizeh/talentdesk/internal/positions"
	"github.com/garnizeh/talentdesk/internal/seed"
	"github.com/garnizeh/talentdesk/internal/session"
	"github.com/garnizeh/talentdesk/pkg/models"
	"github.com/garnizeh/talentdesk/pkg/repository"
)

// ErrSessionChanged is returned when a caller acts for an identity that is
// no longer the signed-in one.
var ErrSessionChanged = errors.New("session belongs to another identity")

// Workspace is the signed-in identity together with its collections.
type Workspace struct {
	Owner      models.Identity
	Positions  *positions.Store
	Candidates *candidates.Store
}

type Portal struct {
	mu         sync.Mutex
	kv         repository.KeyValueStore
	logger     *slog.Logger
	demo       seed.Data
	session    *session.Store
	posOpts    []positions.Option
	owner      string
	positions  *positions.Store
	candidates *candidates.Store
}

type Option func(*options)

type options struct {
	session   []session.Option
	positions []positions.Option
}

func WithSessionOptions(opts ...session.Option) Option {
	return func(o *options) { o.session = append(o.session, opts...) }
}

func WithPositionOptions(opts ...positions.Option) Option {
	return func(o *options) { o.positions = append(o.positions, opts...) }
}

// New restores any persisted session and opens its collections. demo is
// copied into every owner that has no collection yet.
func New(ctx context.Context, kv repository.KeyValueStore, demo *seed.Data, logger *slog.Logger, opts ...Option) (*Portal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &Portal{
		kv:      kv,
		logger:  logger,
		session: session.New(kv, logger, o.session...),
		posOpts: o.positions,
	}
	if demo != nil {
		p.demo = *demo
	}

	if p.session.Restore(ctx) {
		if err := p.open(ctx); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *Portal) Current() (models.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.Current()
}

// Authorize returns the current identity when its id is ownerID.
func (p *Portal) Authorize(ownerID string) (models.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.authorize(ownerID)
}

func (p *Portal) Register(ctx context.Context, reg models.Registration) (*models.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.session.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := p.open(ctx); err != nil {
		return nil, err
	}
	return id, nil
}

func (p *Portal) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.session.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := p.open(ctx); err != nil {
		return nil, err
	}
	return id, nil
}

// Logout ends the session of ownerID.
func (p *Portal) Logout(ctx context.Context, ownerID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.authorize(ownerID); err != nil {
		return err
	}
	p.close()
	return p.session.Logout(ctx)
}

func (p *Portal) UpdateProfile(ctx context.Context, ownerID string, upd models.ProfileUpdate) (*models.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.authorize(ownerID); err != nil {
		return nil, err
	}
	return p.session.UpdateProfile(ctx, upd)
}

// Do runs fn with the workspace of ownerID while holding the portal lock.
func (p *Portal) Do(ctx context.Context, ownerID string, fn func(ws Workspace) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	owner, err := p.authorize(ownerID)
	if err != nil {
		return err
	}
	if p.positions == nil || p.owner != owner.ID {
		if err := p.open(ctx); err != nil {
			return err
		}
	}

	return fn(Workspace{Owner: owner, Positions: p.positions, Candidates: p.candidates})
}

func (p *Portal) authorize(ownerID string) (models.Identity, error) {
	cur, ok := p.session.Current()
	if !ok {
		return models.Identity{}, session.ErrNoSession
	}
	if cur.ID != ownerID {
		return models.Identity{}, ErrSessionChanged
	}
	return cur, nil
}

// open loads the collections of the current identity.
func (p *Portal) open(ctx context.Context) error {
	cur, ok := p.session.Current()
	if !ok {
		p.close()
		return session.ErrNoSession
	}
	if p.positions != nil && p.owner == cur.ID {
		return nil
	}
	p.close()

	ps, err := positions.New(ctx, p.kv, cur.ID, p.demo.Positions, p.logger, p.posOpts...)
	if err != nil {
		return fmt.Errorf("open positions: %w", err)
	}
	cs, err := candidates.New(ctx, p.kv, cur.ID, p.demo.Candidates, p.logger)
	if err != nil {
		return fmt.Errorf("open candidates: %w", err)
	}

	p.owner, p.positions, p.candidates = cur.ID, ps, cs
	return nil
}

func (p *Portal) close() {
	p.owner, p.positions, p.candidates = "", nil, nil
}
