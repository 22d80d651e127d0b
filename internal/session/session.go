// Package session owns the portal's authenticated identity and the account
// directory behind it.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/talentdesk/internal/metrics"
	"github.com/garnizeh/talentdesk/internal/storage"
	"github.com/garnizeh/talentdesk/pkg/models"
	"github.com/garnizeh/talentdesk/pkg/repository"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

// Store tracks who is signed in. It is not safe for concurrent use; callers
// that serve several goroutines must serialize access.
type Store struct {
	kv      repository.KeyValueStore
	logger  *slog.Logger
	cost    int
	now     func() time.Time
	newID   func() string
	current *models.Identity
}

type Option func(*Store)

// WithBcryptCost sets the cost used for new password hashes.
func WithBcryptCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 identity id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns a logged-out store. Call Restore to pick up a persisted session.
func New(kv repository.KeyValueStore, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		kv:     kv,
		logger: logger,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Current returns a copy of the signed-in identity.
func (s *Store) Current() (models.Identity, bool) {
	if s.current == nil {
		return models.Identity{}, false
	}
	return cloneIdentity(*s.current), true
}

// IsAuthenticated reports whether an identity is signed in. It has no side effects.
func (s *Store) IsAuthenticated() bool {
	return s.current != nil
}

// Restore loads a session persisted by an earlier process. It never fails:
// missing, partial or unparsable session state leaves the store logged out,
// and partial or unparsable state is removed.
func (s *Store) Restore(ctx context.Context) bool {
	s.current = nil

	flag, flagFound, err := s.kv.GetItem(ctx, storage.SessionFlagKey)
	if err != nil {
		s.logger.Error("session: read session flag", slog.Any("err", err))
		return false
	}

	var id models.Identity
	idFound, err := storage.Load(ctx, s.kv, storage.CurrentIdentityKey, &id)
	if err != nil {
		if errors.Is(err, storage.ErrCorrupt) {
			s.discard(ctx, err.Error())
			return false
		}
		s.logger.Error("session: read current identity", slog.Any("err", err))
		return false
	}

	if !flagFound && !idFound {
		return false
	}
	if flag != storage.SessionFlagValue || !idFound || id.ID == "" {
		s.discard(ctx, "incomplete session state")
		return false
	}

	s.current = &id
	s.logger.Info("session: restored", slog.String("identity_id", id.ID))
	return true
}

// Register creates an account and signs it in.
func (s *Store) Register(ctx context.Context, reg models.Registration) (*models.Identity, error) {
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		metrics.ObserveAuth("register", "error")
		return nil, err
	}

	for _, a := range dir {
		if a.Email == reg.Email {
			metrics.ObserveAuth("register", "duplicate_email")
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		metrics.ObserveAuth("register", "error")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := models.Account{
		Identity: models.Identity{
			ID:              s.newID(),
			Email:           reg.Email,
			Name:            reg.Name,
			Title:           reg.Title,
			CompanyName:     reg.CompanyName,
			CompanyWebsite:  reg.CompanyWebsite,
			CompanyLinkedIn: reg.CompanyLinkedIn,
			CompanyLogo:     reg.CompanyLogo,
			OfficeLocations: models.UniqueStrings(reg.OfficeLocations),
			CreatedAt:       s.now().UTC(),
		},
		PasswordHash: string(hash),
	}

	dir = append(dir, acct)
	if err := storage.Save(ctx, s.kv, storage.DirectoryKey, dir); err != nil {
		metrics.ObserveAuth("register", "error")
		return nil, err
	}

	id := acct.Redacted()
	if err := s.establish(ctx, id); err != nil {
		metrics.ObserveAuth("register", "error")
		return nil, err
	}

	metrics.ObserveAuth("register", "ok")
	s.logger.Info("session: registered", slog.String("identity_id", id.ID))
	return &id, nil
}

// Login signs in the account matching email and password. A failed attempt
// leaves the current session untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	dir, err := s.loadDirectory(ctx)
	if err != nil {
		metrics.ObserveAuth("login", "error")
		return nil, err
	}

	idx := -1
	for i, a := range dir {
		if a.Email == email {
			idx = i
			break
		}
	}
	if idx < 0 || !s.verify(ctx, dir, idx, password) {
		metrics.ObserveAuth("login", "invalid_credentials")
		s.logger.Info("session: login failed", slog.String("email", email))
		return nil, ErrInvalidCredentials
	}

	id := dir[idx].Redacted()
	if err := s.establish(ctx, id); err != nil {
		metrics.ObserveAuth("login", "error")
		return nil, err
	}

	metrics.ObserveAuth("login", "ok")
	s.logger.Info("session: logged in", slog.String("identity_id", id.ID))
	return &id, nil
}

// Logout ends the session. Calling it without a session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.current = nil

	return errors.Join(
		s.kv.RemoveItem(ctx, storage.SessionFlagKey),
		s.kv.RemoveItem(ctx, storage.CurrentIdentityKey),
	)
}

// UpdateProfile merges upd into the current identity and its directory entry.
func (s *Store) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Identity, error) {
	if s.current == nil {
		return nil, ErrNoSession
	}

	updated := cloneIdentity(*s.current)
	upd.Apply(&updated)

	if err := storage.Save(ctx, s.kv, storage.CurrentIdentityKey, updated); err != nil {
		return nil, err
	}
	s.current = &updated

	dir, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dir {
		if dir[i].ID == updated.ID {
			upd.Apply(&dir[i].Identity)
			if err := storage.Save(ctx, s.kv, storage.DirectoryKey, dir); err != nil {
				return nil, err
			}
			break
		}
	}

	out := cloneIdentity(updated)
	return &out, nil
}

// verify checks password against dir[idx]. Entries that still hold a
// plaintext password are upgraded to a bcrypt hash on success.
func (s *Store) verify(ctx context.Context, dir []models.Account, idx int, password string) bool {
	acct := &dir[idx]
	if acct.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) == nil
	}

	if acct.Password == "" || subtle.ConstantTimeCompare([]byte(acct.Password), []byte(password)) != 1 {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		s.logger.Warn("session: hash legacy password", slog.String("identity_id", acct.ID), slog.Any("err", err))
		return true
	}
	acct.PasswordHash = string(hash)
	acct.Password = ""
	if err := storage.Save(ctx, s.kv, storage.DirectoryKey, dir); err != nil {
		s.logger.Warn("session: upgrade legacy password", slog.String("identity_id", acct.ID), slog.Any("err", err))
	}

	return true
}

// establish persists id as the current identity and raises the session flag.
func (s *Store) establish(ctx context.Context, id models.Identity) error {
	if err := storage.Save(ctx, s.kv, storage.CurrentIdentityKey, id); err != nil {
		return err
	}
	if err := s.kv.SetItem(ctx, storage.SessionFlagKey, storage.SessionFlagValue); err != nil {
		return fmt.Errorf("write %s: %w", storage.SessionFlagKey, err)
	}

	s.current = &id
	return nil
}

// loadDirectory returns the account directory. An unparsable directory is
// dropped and treated as empty.
func (s *Store) loadDirectory(ctx context.Context) ([]models.Account, error) {
	var dir []models.Account
	_, err := storage.Load(ctx, s.kv, storage.DirectoryKey, &dir)
	if err == nil {
		return dir, nil
	}
	if !errors.Is(err, storage.ErrCorrupt) {
		return nil, err
	}

	metrics.ObserveCorruptState("directory")
	s.logger.Warn("session: discarding unparsable account directory", slog.Any("err", err))
	if rmErr := s.kv.RemoveItem(ctx, storage.DirectoryKey); rmErr != nil {
		s.logger.Error("session: remove account directory", slog.Any("err", rmErr))
	}

	return nil, nil
}

func (s *Store) discard(ctx context.Context, reason string) {
	metrics.ObserveCorruptState("session")
	s.logger.Warn("session: discarding persisted session", slog.String("reason", reason))

	if err := s.Logout(ctx); err != nil {
		s.logger.Error("session: clear persisted session", slog.Any("err", err))
	}
}

func cloneIdentity(id models.Identity) models.Identity {
	id.OfficeLocations = append([]string(nil), id.OfficeLocations...)
	return id
}
