// Package identity handles accounts, session tokens, and profile details.
package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/store"
)

// MaxStoredPhotoURL is the longest photo URL kept on the identity record.
// Longer URLs and data: URIs live only in the profile store.
const MaxStoredPhotoURL = 1900

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = fmt.Errorf("password should be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid session token")
)

// Identity is a signed-up user as seen by the rest of the app.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Name is the display name, or the email when none is set.
func (i *Identity) Name() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Email
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Identity  *Identity `json:"identity"`
}

// ProfileUpdate changes profile fields. Nil fields are left alone.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// Service manages identities. It is safe for concurrent use.
type Service struct {
	users    store.UserRepo
	profiles store.ProfileRepo
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
	cost     int

	mu        sync.Mutex
	revoked   map[string]time.Time
	observers map[int]func(*Identity)
	nextObs   int
}

// New creates a Service. A missing secret is replaced with a random one.
func New(users store.UserRepo, profiles store.ProfileRepo, cfg Config, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = make([]byte, 32)
		if _, err := rand.Read(cfg.Secret); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		log.Warn("no token secret configured, using an ephemeral one")
	}
	return &Service{
		users:     users,
		profiles:  profiles,
		cfg:       cfg,
		log:       log.With("component", "identity"),
		now:       time.Now,
		cost:      bcrypt.DefaultCost,
		revoked:   make(map[string]time.Time),
		observers: make(map[int]func(*Identity)),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates an account. It does not sign the user in.
func (s *Service) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	rec := store.UserRecord{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}
	s.log.Info("identity created", "user_id", rec.ID)
	return &Identity{ID: rec.ID, Email: rec.Email}, nil
}

// SignIn checks credentials and issues a token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	rec, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	id := s.view(ctx, rec)
	tok, exp, err := s.issueToken(id)
	if err != nil {
		return nil, err
	}
	s.notify(id)
	return &Session{Token: tok, ExpiresAt: exp, Identity: id}, nil
}

// SignOut revokes token. Signing out an already revoked token is not an
// error.
func (s *Service) SignOut(token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return err
	}
	s.revoke(claims.ID, claims.ExpiresAt.Time)
	s.notify(nil)
	return nil
}

// Authenticate resolves a token to its identity.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if s.isRevoked(claims.ID) {
		return nil, fmt.Errorf("%w: signed out", ErrInvalidToken)
	}
	id, err := s.Get(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	return id, err
}

// Get loads an identity by ID. Unknown IDs return store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Identity, error) {
	rec, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	return s.view(ctx, rec), nil
}

// view builds an Identity, preferring the profile store photo the way the
// profile page shows it.
func (s *Service) view(ctx context.Context, rec *store.UserRecord) *Identity {
	id := &Identity{
		ID:          rec.ID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		PhotoURL:    rec.PhotoURL,
	}
	p, err := s.StoredProfile(ctx, rec.ID)
	if err != nil {
		s.log.Warn("failed to read profile entries", "user_id", rec.ID, "error", err)
		return id
	}
	if p.PhotoURL != "" {
		id.PhotoURL = p.PhotoURL
	}
	if id.DisplayName == "" {
		id.DisplayName = p.DisplayName
	}
	return id
}

// UpdateProfile applies u. A photo URL that is a data: URI or longer than
// MaxStoredPhotoURL is kept only in the profile store. Both fields are
// always mirrored to the profile store.
func (s *Service) UpdateProfile(ctx context.Context, id string, u ProfileUpdate) (*Identity, error) {
	rec, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	displayName, photoURL := rec.DisplayName, rec.PhotoURL
	if u.DisplayName != nil {
		displayName = strings.TrimSpace(*u.DisplayName)
		if err := s.setEntry(ctx, displayNameKey(id), displayName); err != nil {
			return nil, err
		}
	}
	if u.PhotoURL != nil {
		url := strings.TrimSpace(*u.PhotoURL)
		if storableOnRecord(url) {
			photoURL = url
		}
		if err := s.setEntry(ctx, photoKey(id), url); err != nil {
			return nil, err
		}
	}

	if err := s.users.UpdateProfile(ctx, id, displayName, photoURL); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	rec.DisplayName, rec.PhotoURL = displayName, photoURL

	ident := s.view(ctx, rec)
	s.notify(ident)
	return ident, nil
}

// storableOnRecord reports whether url may be written to the identity
// record. The empty string clears it.
func storableOnRecord(url string) bool {
	return !strings.HasPrefix(url, "data:") && len(url) <= MaxStoredPhotoURL
}

// Subscribe registers fn to receive the identity on sign-in and profile
// changes, and nil on sign-out. The returned func unsubscribes.
func (s *Service) Subscribe(fn func(*Identity)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.nextObs
	s.nextObs++
	s.observers[key] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.observers, key)
		})
	}
}

func (s *Service) notify(id *Identity) {
	s.mu.Lock()
	fns := make([]func(*Identity), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}
