// Package services contains the application services behind the CLI: the
// session store owning the authentication lifecycle, and thin catalog,
// sales and alert services over the API client.
package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/models"
	"github.com/Fury174k/pharmstock/internal/client/repositories/credentials"
)

// ErrAuthInProgress is returned when Login or Register is called while a
// previous auth call is still in flight. Auth calls are not serialized;
// a concurrent second attempt fails fast instead of racing the first.
var ErrAuthInProgress = errors.New("authentication already in progress")

// SessionStore is the single source of truth for the current session: the
// authenticated user's profile and the bearer credentials, persisted to
// local storage so the session survives restarts.
//
// Lifecycle: created empty, populated by Restore (startup) or
// Login/Register, cleared by Logout or by a failed profile fetch during
// Restore (invalid persisted credential).
type SessionStore struct {
	client api.Client
	store  credentials.Repository

	mu      sync.Mutex
	authing bool
	user    *models.UserProfile
	access  string
	refresh string
}

// NewSessionStore binds a session store to the API client it authenticates
// with and the storage its credentials persist to.
func NewSessionStore(client api.Client, store credentials.Repository) *SessionStore {
	return &SessionStore{client: client, store: store}
}

// Token implements api.TokenSource: the current primary credential, or ""
// when anonymous. Never blocks on the network.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// CurrentUser returns the profile of the authenticated user, or nil.
func (s *SessionStore) CurrentUser() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.access != ""
}

// Restore rehydrates the session from persisted credentials at startup.
//
// With no persisted credential the store stays anonymous and the profile
// endpoint is never called. With one present, the credential is installed
// optimistically and the profile fetched; a fetch failure is treated as an
// invalid or expired credential: persisted keys are cleared, the store stays
// anonymous, and no error is surfaced.
func (s *SessionStore) Restore(ctx context.Context) error {
	access, err := s.store.Get(ctx, credentials.KeyAccessToken)
	if err != nil {
		return err
	}
	if access == "" {
		return nil
	}
	refresh, err := s.store.Get(ctx, credentials.KeyRefreshToken)
	if err != nil {
		return err
	}

	s.install(nil, access, refresh)

	profile, err := s.client.GetUser(ctx)
	if err != nil {
		s.reset(ctx)
		return nil
	}

	s.install(profile, access, refresh)
	return nil
}

// Login authenticates with the backend, persists the returned credential(s),
// and populates the profile before returning. On failure the store remains
// anonymous and the normalized error is returned to the caller.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	if err := s.beginAuth(); err != nil {
		return err
	}
	defer s.endAuth()

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

// Register creates the account server-side and signs in with the returned
// credential. When the response embeds the created user, exactly that
// profile is installed without a second fetch.
func (s *SessionStore) Register(ctx context.Context, username, email, password string) error {
	if err := s.beginAuth(); err != nil {
		return err
	}
	defer s.endAuth()

	resp, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

// Logout clears persisted credentials and the in-memory session. It is
// synchronous, idempotent, and always succeeds; storage failures are logged
// and otherwise ignored.
func (s *SessionStore) Logout(ctx context.Context) {
	s.reset(ctx)
}

// establish persists and installs the credentials of a successful auth
// response, then makes sure a profile is populated.
func (s *SessionStore) establish(ctx context.Context, resp *api.AuthResponse) error {
	primary := resp.Primary()
	if primary == "" {
		// A 2xx reply without a credential is not authentication success.
		return &api.Error{Message: "Authentication response did not include a credential.", Kind: api.KindAuth}
	}

	if err := s.store.Set(ctx, credentials.KeyAccessToken, primary); err != nil {
		return err
	}
	if resp.Refresh != "" {
		if err := s.store.Set(ctx, credentials.KeyRefreshToken, resp.Refresh); err != nil {
			return err
		}
	} else if err := s.store.Delete(ctx, credentials.KeyRefreshToken); err != nil {
		return err
	}

	s.install(resp.User, primary, resp.Refresh)

	if resp.User == nil {
		profile, err := s.client.GetUser(ctx)
		if err != nil {
			s.reset(ctx)
			return err
		}
		s.install(profile, primary, resp.Refresh)
	}
	return nil
}

func (s *SessionStore) beginAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authing {
		return ErrAuthInProgress
	}
	s.authing = true
	return nil
}

func (s *SessionStore) endAuth() {
	s.mu.Lock()
	s.authing = false
	s.mu.Unlock()
}

func (s *SessionStore) install(user *models.UserProfile, access, refresh string) {
	s.mu.Lock()
	s.user = user
	s.access = access
	s.refresh = refresh
	s.mu.Unlock()
}

func (s *SessionStore) reset(ctx context.Context) {
	s.install(nil, "", "")
	if err := s.store.Delete(ctx, credentials.KeyAccessToken); err != nil {
		log.Printf("failed to clear access token: %s", err)
	}
	if err := s.store.Delete(ctx, credentials.KeyRefreshToken); err != nil {
		log.Printf("failed to clear refresh token: %s", err)
	}
}
