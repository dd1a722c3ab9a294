package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fury174k/pharmstock/internal/client/api"
	"github.com/Fury174k/pharmstock/internal/client/models"
	"github.com/Fury174k/pharmstock/internal/client/repositories/credentials"
)

// memStore is an in-memory credentials.Repository for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

// fakeClient stubs api.Client; only the auth surface is scripted, the rest
// is unused by the session store.
type fakeClient struct {
	api.Client

	loginResp    *api.AuthResponse
	loginErr     error
	loginStarted chan struct{}
	loginRelease chan struct{}

	registerResp *api.AuthResponse
	registerErr  error

	getUserResp  *models.UserProfile
	getUserErr   error
	getUserCalls int
}

func (f *fakeClient) Login(context.Context, string, string) (*api.AuthResponse, error) {
	if f.loginStarted != nil {
		close(f.loginStarted)
	}
	if f.loginRelease != nil {
		<-f.loginRelease
	}
	return f.loginResp, f.loginErr
}

func (f *fakeClient) Register(context.Context, string, string, string) (*api.AuthResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeClient) GetUser(context.Context) (*models.UserProfile, error) {
	f.getUserCalls++
	return f.getUserResp, f.getUserErr
}

var alice = &models.UserProfile{ID: "u1", Username: "alice", Email: "alice@example.org"}

func TestLogin_PersistsPairAndFetchesProfile(t *testing.T) {
	store := newMemStore()
	client := &fakeClient{
		loginResp:   &api.AuthResponse{Access: "A1", Refresh: "R1"},
		getUserResp: alice,
	}
	s := NewSessionStore(client, store)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "alice", "pw1"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, alice, s.CurrentUser())
	assert.Equal(t, "A1", s.Token())
	assert.Equal(t, "A1", store.data[credentials.KeyAccessToken])
	assert.Equal(t, "R1", store.data[credentials.KeyRefreshToken])
	assert.Equal(t, 1, client.getUserCalls)
}

func TestLogin_SingleTokenScheme(t *testing.T) {
	store := newMemStore()
	// A single-token login also clears any leftover refresh token.
	require.NoError(t, store.Set(context.Background(), credentials.KeyRefreshToken, "stale"))

	client := &fakeClient{
		loginResp:   &api.AuthResponse{Token: "T1"},
		getUserResp: alice,
	}
	s := NewSessionStore(client, store)

	require.NoError(t, s.Login(context.Background(), "alice", "pw1"))

	assert.Equal(t, "T1", s.Token())
	assert.Equal(t, "T1", store.data[credentials.KeyAccessToken])
	_, hasRefresh := store.data[credentials.KeyRefreshToken]
	assert.False(t, hasRefresh)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	store := newMemStore()
	authErr := &api.Error{Message: "Invalid username or password.", StatusCode: 401, Kind: api.KindAuth}
	client := &fakeClient{loginErr: authErr}
	s := NewSessionStore(client, store)

	err := s.Login(context.Background(), "alice", "wrong")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindAuth, apiErr.Kind)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, store.data)
}

func TestLogin_ResponseWithoutCredentialIsNotSuccess(t *testing.T) {
	client := &fakeClient{loginResp: &api.AuthResponse{}, getUserResp: alice}
	s := NewSessionStore(client, newMemStore())

	err := s.Login(context.Background(), "alice", "pw1")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindAuth, apiErr.Kind)
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, client.getUserCalls)
}

func TestRegister_InstallsEmbeddedUserWithoutRefetch(t *testing.T) {
	store := newMemStore()
	client := &fakeClient{
		registerResp: &api.AuthResponse{Token: "T9", User: alice},
	}
	s := NewSessionStore(client, store)

	require.NoError(t, s.Register(context.Background(), "alice", "alice@example.org", "pw1"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, alice, s.CurrentUser())
	assert.Equal(t, "T9", store.data[credentials.KeyAccessToken])
	assert.Zero(t, client.getUserCalls, "profile must not be re-fetched when embedded")
}

func TestRestore_NoCredentialStaysAnonymous(t *testing.T) {
	client := &fakeClient{getUserResp: alice}
	s := NewSessionStore(client, newMemStore())

	require.NoError(t, s.Restore(context.Background()))

	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, client.getUserCalls, "profile endpoint must not be called")
}

func TestRestore_ValidCredential(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credentials.KeyAccessToken, "A1"))
	require.NoError(t, store.Set(ctx, credentials.KeyRefreshToken, "R1"))

	client := &fakeClient{getUserResp: alice}
	s := NewSessionStore(client, store)

	require.NoError(t, s.Restore(ctx))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, alice, s.CurrentUser())
	assert.Equal(t, "A1", s.Token())
}

func TestRestore_InvalidCredentialClearedSilently(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credentials.KeyAccessToken, "expired"))
	require.NoError(t, store.Set(ctx, credentials.KeyRefreshToken, "R1"))

	client := &fakeClient{
		getUserErr: &api.Error{Message: "Invalid token.", StatusCode: 401, Kind: api.KindAuth},
	}
	s := NewSessionStore(client, store)

	require.NoError(t, s.Restore(ctx), "restore failure is recovered locally")

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Empty(t, store.data, "persisted credentials must be cleared")
}

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	store := newMemStore()
	client := &fakeClient{
		loginResp:   &api.AuthResponse{Access: "A1", Refresh: "R1"},
		getUserResp: alice,
	}
	s := NewSessionStore(client, store)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "alice", "pw1"))
	require.True(t, s.IsAuthenticated())

	s.Logout(ctx)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, store.data)

	// Logging out while anonymous is a no-op.
	s.Logout(ctx)
	assert.False(t, s.IsAuthenticated())
}

func TestConcurrentLogin_FailsFast(t *testing.T) {
	client := &fakeClient{
		loginResp:    &api.AuthResponse{Access: "A1"},
		getUserResp:  alice,
		loginStarted: make(chan struct{}),
		loginRelease: make(chan struct{}),
	}
	s := NewSessionStore(client, newMemStore())

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Login(context.Background(), "alice", "pw1") }()

	<-client.loginStarted
	err := s.Login(context.Background(), "alice", "pw1")
	assert.ErrorIs(t, err, ErrAuthInProgress)

	close(client.loginRelease)
	require.NoError(t, <-firstDone)
	assert.True(t, s.IsAuthenticated())
}

// End-to-end: real REST client against a stub backend, real session store,
// SQLite-free in-memory credential storage.
func TestSession_EndToEnd(t *testing.T) {
	var gotUserAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"alice","password":"pw1"}`, string(body))
		_, _ = w.Write([]byte(`{"access":"A1","refresh":"R1"}`))
	})
	mux.HandleFunc("GET /user/", func(w http.ResponseWriter, r *http.Request) {
		gotUserAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"u1","username":"alice","email":"alice@example.org"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := api.NewRESTClient(ts.URL, 0)
	store := newMemStore()
	s := NewSessionStore(client, store)
	client.SetTokenSource(s)

	ctx := context.Background()
	require.NoError(t, s.Login(ctx, "alice", "pw1"))

	assert.Equal(t, "A1", store.data[credentials.KeyAccessToken])
	assert.Equal(t, "R1", store.data[credentials.KeyRefreshToken])

	profile, err := client.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Token A1", gotUserAuth)
	assert.Equal(t, "alice", profile.Username)
}

func TestRestore_StorageErrorSurfaces(t *testing.T) {
	s := NewSessionStore(&fakeClient{}, errStore{})
	err := s.Restore(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
}

type errStore struct{}

func (errStore) Get(context.Context, string) (string, error) {
	return "", errors.New("disk gone")
}
func (errStore) Set(context.Context, string, string) error { return errors.New("disk gone") }
func (errStore) Delete(context.Context, string) error      { return errors.New("disk gone") }
func (errStore) Clear(context.Context) error               { return errors.New("disk gone") }
