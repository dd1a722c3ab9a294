package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Fury174k/pharmstock/internal/common"
	"github.com/Fury174k/pharmstock/internal/server/config"
	"github.com/Fury174k/pharmstock/internal/server/models"
)

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(t, db, rm)

	user, pair, err := s.Register(context.Background(), "alice", "alice@example.com", "pw12345")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "pw12345" {
		t.Fatalf("password stored in plain text")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if _, ok := rm.refresh.tokens[pair.RefreshToken]; !ok {
		t.Fatalf("refresh token not persisted")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(t, db, rm)

	if _, _, err := s.Register(context.Background(), "alice", "a@example.com", "pw"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, _, err := s.Register(context.Background(), "alice", "b@example.com", "pw")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(t, db, rm)

	if _, _, err := s.Register(context.Background(), "alice", "a@example.com", "pw12345"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	pair, err := s.Login(context.Background(), "alice", "pw12345")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(t, db, rm)

	if _, _, err := s.Register(context.Background(), "alice", "a@example.com", "pw12345"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := s.Login(context.Background(), "alice", "nope")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(t, db, rm)

	_, err := s.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want ErrorUnauthorized, got %v", err)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := newFakeRepoManager()
	rm.refresh.tokens["refresh-xyz"] = refreshTokenFixture("u1", 10*time.Minute)
	s := newUserService(t, db, rm)

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if _, ok := rm.refresh.tokens["refresh-xyz"]; ok {
		t.Fatalf("old refresh token not rotated out")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	rm.refresh.tokens["r"] = refreshTokenFixture("u1", -time.Minute)
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshToken_Unknown(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "missing")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want ErrorUnauthorized, got %v", err)
	}
}

func TestRefreshToken_CreateErrRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.refresh.tokens["r"] = refreshTokenFixture("u1", 10*time.Minute)
	rm.refresh.createErr = errBoom{}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func refreshTokenFixture(userID string, ttl time.Duration) *models.RefreshToken {
	return &models.RefreshToken{UserID: userID, Expires: time.Now().Add(ttl)}
}
