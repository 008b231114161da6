package auth

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dmorenoc/TaskAgenda/models"
	"github.com/dmorenoc/TaskAgenda/storage"
)

func newTestIssuer(t *testing.T, ttl time.Duration) (*Issuer, *storage.UserStore) {
	t.Helper()
	users := storage.NewUserStore(filepath.Join(t.TempDir(), "users.json"), log.New(io.Discard))
	return NewIssuer([]byte("test-secret"), ttl, users), users
}

func register(t *testing.T, users *storage.UserStore, username, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := users.Register(username, hash); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestLoginIssuesTokenBoundToUsername(t *testing.T) {
	issuer, users := newTestIssuer(t, time.Hour)
	register(t, users, "alice", "pw1")

	token, err := issuer.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("Login returned an empty token")
	}

	username, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if username != "alice" {
		t.Fatalf("embedded username = %q, want alice", username)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)

	if _, err := issuer.Login("ghost", "pw"); err != models.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	issuer, users := newTestIssuer(t, time.Hour)
	register(t, users, "alice", "pw1")

	token, err := issuer.Login("alice", "wrong")
	if err != models.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if token != "" {
		t.Fatal("no token may be issued on failed login")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer, users := newTestIssuer(t, -time.Minute)
	register(t, users, "alice", "pw1")

	token, err := issuer.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	issuer, _ := newTestIssuer(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(token); err != ErrInvalidToken {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyTokenSignedWithDifferentSecret(t *testing.T) {
	issuerA, usersA := newTestIssuer(t, time.Hour)
	register(t, usersA, "alice", "pw1")

	token, err := issuerA.Login("alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	issuerB := NewIssuer([]byte("other-secret"), time.Hour, usersA)
	if _, err := issuerB.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword("pw1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("pw2", hash) {
		t.Error("wrong password accepted")
	}
}
