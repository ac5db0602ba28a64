package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"oratoria_backend/internal/auth/password"
	"oratoria_backend/internal/auth/repository"
	"oratoria_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeStore struct {
	users   map[string]*repository.AdminUser
	created []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*repository.AdminUser)}
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*repository.AdminUser, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) Count(context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeStore) Create(_ context.Context, email, passwordHash string) (*repository.AdminUser, error) {
	user := &repository.AdminUser{ID: uuid.New(), Email: email, PasswordHash: passwordHash}
	f.users[email] = user
	f.created = append(f.created, email)
	return user, nil
}

type fakeConfig struct{}

func (fakeConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (fakeConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

type fakeSeed struct {
	email    string
	password string
}

func (f fakeSeed) GetAdminEmail() string    { return f.email }
func (f fakeSeed) GetAdminPassword() string { return f.password }

func newService(store Store) *Service {
	return New(store, fakeConfig{}, logger.New("development"))
}

func addUser(t *testing.T, store *fakeStore, email, plain string) {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := store.Create(context.Background(), email, hash); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
}

func TestLoginIssuesAccessToken(t *testing.T) {
	store := newFakeStore()
	addUser(t, store, "admin@example.com", "correct horse battery")
	svc := newService(store)

	token, err := svc.Login(context.Background(), "admin@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" {
		t.Fatalf("expected access token type, got %v", claims["type"])
	}
	if _, err := uuid.Parse(claims["sub"].(string)); err != nil {
		t.Fatalf("sub is not a UUID: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	store := newFakeStore()
	addUser(t, store, "admin@example.com", "correct horse battery")
	svc := newService(store)

	if _, err := svc.Login(context.Background(), "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := newService(newFakeStore())

	if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSeedCreatesAdminWhenEmpty(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	if err := svc.Seed(context.Background(), fakeSeed{email: "admin@example.com", password: "first-password"}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("expected one created account, got %d", len(store.created))
	}
	if _, err := svc.Login(context.Background(), "admin@example.com", "first-password"); err != nil {
		t.Fatalf("seeded credentials do not work: %v", err)
	}
}

func TestSeedSkipsWhenUsersExist(t *testing.T) {
	store := newFakeStore()
	addUser(t, store, "existing@example.com", "existing password")
	svc := newService(store)

	if err := svc.Seed(context.Background(), fakeSeed{email: "admin@example.com", password: "pw"}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected no new accounts, got %d", len(store.created))
	}
}

func TestSeedSkipsWhenUnconfigured(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	if err := svc.Seed(context.Background(), fakeSeed{}); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("expected no accounts, got %d", len(store.created))
	}
}
