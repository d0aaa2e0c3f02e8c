package service

import (
	"context"
	"fmt"
	"sync"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/infrastructure/state"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionServiceImpl implements port.SessionService.
type SessionServiceImpl struct {
	client    port.MixinClient
	portfolio port.PortfolioService
	tokens    port.TokenStore
	tokenKey  string
	published *state.Value[entity.Session]
	logger    port.Logger

	mu         sync.Mutex
	token      string
	userID     string
	background sync.WaitGroup
}

// NewSessionService creates a disconnected session manager.
func NewSessionService(
	client port.MixinClient,
	portfolio port.PortfolioService,
	tokens port.TokenStore,
	tokenKey string,
	published *state.Value[entity.Session],
	l port.Logger,
) *SessionServiceImpl {
	if published == nil {
		published = state.NewValue(entity.Session{})
	}
	return &SessionServiceImpl{
		client:    client,
		portfolio: portfolio,
		tokens:    tokens,
		tokenKey:  tokenKey,
		published: published,
		logger:    l,
	}
}

// CompleteAuthentication validates token against the provider profile. A missing or
// nameless profile disconnects the session and clears the persisted token without an
// error. On success the token is persisted, the session becomes connected and a
// balance refresh starts in the background. A token that cannot be persisted leaves
// the session unchanged.
func (s *SessionServiceImpl) CompleteAuthentication(ctx context.Context, token string) error {
	profile, err := s.client.UserMe(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		s.logger.Warn("Profile request returned no data, dropping session")
		s.reject(ctx)
		return nil
	}
	if profile.FullName == "" {
		s.logger.Warn("Profile has no full name, dropping session", "user_id", profile.UserID)
		s.reject(ctx)
		return nil
	}

	encoded, err := json.MarshalToString(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := s.tokens.Set(ctx, s.tokenKey, encoded); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.userID = profile.UserID
	s.published.Set(entity.Session{State: entity.Connected, Profile: profile})
	s.mu.Unlock()
	s.logger.Info("Session connected", "user_id", profile.UserID)

	s.refreshInBackground(profile.UserID, token)
	return nil
}

// refreshInBackground starts a balance refresh that is not tied to the caller's
// context. Failures are only logged.
func (s *SessionServiceImpl) refreshInBackground(userID, token string) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		if _, err := s.portfolio.RefreshBalances(context.Background(), userID, token); err != nil {
			s.logger.Error("Background balance refresh failed", "user_id", userID, "error", err)
		}
	}()
}

// Disconnect clears the profile and the persisted token. Calling it again is a no-op.
func (s *SessionServiceImpl) Disconnect() {
	s.reject(context.Background())
	s.logger.Info("Session disconnected")
}

// reject clears any in-memory session and the persisted token.
func (s *SessionServiceImpl) reject(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.userID = ""
	s.published.Set(entity.Session{State: entity.Disconnected})
	s.mu.Unlock()
	s.removeToken(ctx)
}

// Restore re-authenticates with a persisted token, if any.
func (s *SessionServiceImpl) Restore(ctx context.Context) error {
	stored, ok, err := s.tokens.Get(ctx, s.tokenKey)
	if err != nil {
		return fmt.Errorf("failed to read persisted token: %w", err)
	}
	if !ok {
		s.logger.Debug("No persisted token to restore")
		return nil
	}
	var token string
	if err := json.UnmarshalFromString(stored, &token); err != nil || token == "" {
		s.logger.Warn("Persisted token is unreadable, removing it", "error", err)
		s.removeToken(ctx)
		return nil
	}
	return s.CompleteAuthentication(ctx, token)
}

// Session returns the published session.
func (s *SessionServiceImpl) Session() entity.Session {
	return s.published.Get()
}

// Profile returns the connected user's profile, or nil.
func (s *SessionServiceImpl) Profile() *entity.Profile {
	return s.published.Get().Profile
}

// Connected reports whether a profile has been accepted.
func (s *SessionServiceImpl) Connected() bool {
	return s.published.Get().State == entity.Connected
}

// Token returns the bearer token of a connected session.
func (s *SessionServiceImpl) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Credentials returns the connected user's id together with the token it was
// accepted with.
func (s *SessionServiceImpl) Credentials() (userID, token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.token, s.token != ""
}

// Wait blocks until background refreshes started so far have finished.
func (s *SessionServiceImpl) Wait() {
	s.background.Wait()
}

func (s *SessionServiceImpl) removeToken(ctx context.Context) {
	if err := s.tokens.Delete(ctx, s.tokenKey); err != nil {
		s.logger.Error("Failed to remove persisted token", "error", err)
	}
}
