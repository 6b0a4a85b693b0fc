// Package account owns the signed-in user: restore at startup, login,
// signup, guest access and logout.
//
// Every change of user is written to the session store; logout clears it.
// Guest access falls back to a local offline identity when the auth service
// cannot be reached.
package account

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/handiism/modplan/internal/api"
	"github.com/handiism/modplan/internal/model"
)

// OfflineGuest is the identity used when guest login cannot reach the server.
var OfflineGuest = model.User{ID: "guest", Name: "Guest User", IsGuest: true}

// Authenticator is the auth collaborator.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.User, error)
	GuestLogin(ctx context.Context) (model.User, error)
	Signup(ctx context.Context, username, email, password string) (model.User, error)
}

// Store persists the current user.
type Store interface {
	Save(model.User) error
	Load() (model.User, bool, error)
	Clear() error
}

// Service tracks the current user. It is safe for concurrent use.
type Service struct {
	auth   Authenticator
	store  Store
	logger *zap.Logger

	mu      sync.Mutex
	current *model.User
}

// NewService creates a Service. A nil logger disables logging.
func NewService(auth Authenticator, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{auth: auth, store: store, logger: logger.Named("account")}
}

// Current returns the signed-in user.
func (s *Service) Current() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

// Restore loads the user saved by a previous run. An unreadable record is
// logged and treated as signed out.
func (s *Service) Restore() (model.User, bool) {
	u, ok, err := s.store.Load()
	if err != nil {
		s.logger.Warn("discarding stored session", zap.Error(err))
		return model.User{}, false
	}
	if !ok {
		return model.User{}, false
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	s.logger.Info("session restored", zap.String("user_id", u.ID), zap.Bool("guest", u.IsGuest))
	return u, true
}

// Login signs in with e-mail and password.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	s.setUser(u)
	return u, nil
}

// Signup registers and signs in a new user.
func (s *Service) Signup(ctx context.Context, username, email, password string) (model.User, error) {
	u, err := s.auth.Signup(ctx, username, email, password)
	if err != nil {
		return model.User{}, err
	}
	s.setUser(u)
	return u, nil
}

// Guest signs in as a guest. When the server is unreachable the offline
// guest identity is used instead and no error is returned.
func (s *Service) Guest(ctx context.Context) (model.User, error) {
	u, err := s.auth.GuestLogin(ctx)
	if errors.Is(err, api.ErrConnectivity) {
		s.logger.Warn("guest login unavailable, continuing offline", zap.Error(err))
		u, err = OfflineGuest, nil
	}
	if err != nil {
		return model.User{}, err
	}
	u.IsGuest = true
	s.setUser(u)
	return u, nil
}

// Logout forgets the current user and clears the store.
func (s *Service) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Service) setUser(u model.User) {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	if err := s.store.Save(u); err != nil {
		s.logger.Warn("session not saved", zap.String("user_id", u.ID), zap.Error(err))
	}
	s.logger.Info("signed in", zap.String("user_id", u.ID), zap.Bool("guest", u.IsGuest))
}
