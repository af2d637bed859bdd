package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medrec/medrec/internal/platform/apperr"
	"github.com/medrec/medrec/internal/platform/auth"
)

// -- Mock User Repository --

type mockUserRepo struct {
	users map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return apperr.ErrConflict
		}
	}
	u.ID = uuid.New()
	u.DateJoined = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// -- Mock Token Repository --

type tokenEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
	revoked   bool
}

type mockTokenRepo struct {
	tokens map[string]tokenEntry
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]tokenEntry)}
}

func (m *mockTokenRepo) StoreRefresh(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	m.tokens[tokenHash] = tokenEntry{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *mockTokenRepo) ValidateRefresh(_ context.Context, tokenHash string) (uuid.UUID, error) {
	entry, ok := m.tokens[tokenHash]
	if !ok || entry.revoked {
		return uuid.Nil, apperr.ErrNotFound
	}
	if time.Now().UTC().After(entry.expiresAt) {
		return uuid.Nil, apperr.ErrNotFound
	}
	return entry.userID, nil
}

func (m *mockTokenRepo) RevokeRefresh(_ context.Context, tokenHash string) error {
	entry, ok := m.tokens[tokenHash]
	if !ok || entry.revoked {
		return apperr.ErrNotFound
	}
	entry.revoked = true
	m.tokens[tokenHash] = entry
	return nil
}

func newTestService() *Service {
	issuer := auth.NewIssuer([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
	return NewService(newMockUserRepo(), newMockTokenRepo(), issuer, 4)
}

func TestService_Register(t *testing.T) {
	svc := newTestService()

	u, err := svc.Register(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if u.Username != "alice" {
		t.Errorf("expected alice, got %s", u.Username)
	}
	if u.PasswordHash == "s3cret-pass" || u.PasswordHash == "" {
		t.Error("expected password to be hashed")
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), "alice", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "other-pass")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), "alice", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pair, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Error("expected both access and refresh tokens")
	}
}

func TestService_Login_BadPassword(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), "alice", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Login(context.Background(), "alice", "wrong-pass")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), "nobody", "whatever-pass")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestService_Refresh(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Register(context.Background(), "alice", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pair, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if access == "" {
		t.Error("expected a new access token")
	}
}

func TestService_Refresh_RevokedToken(t *testing.T) {
	tokens := newMockTokenRepo()
	issuer := auth.NewIssuer([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
	svc := NewService(newMockUserRepo(), tokens, issuer, 4)

	if _, err := svc.Register(context.Background(), "alice", "s3cret-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pair, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tokens.RevokeRefresh(context.Background(), auth.HashRefresh(pair.Refresh)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = svc.Refresh(context.Background(), pair.Refresh)
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("expected auth error for revoked token, got %v", err)
	}
}

func TestService_Refresh_InvalidToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.Refresh(context.Background(), "not-a-real-token")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("expected auth error, got %v", err)
	}
}
