package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-coach/internal/domain/user"
	"career-coach/internal/pkg/jwt"

	"github.com/google/uuid"
)

type memoryUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]user.User{}, byID: map[uuid.UUID]user.User{}}
}

func (m *memoryUserRepo) Create(_ context.Context, u user.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memoryUserRepo) Update(_ context.Context, u user.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func newAuthService() (*Service, *memoryUserRepo) {
	repo := newMemoryUserRepo()
	tokens := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, tokens), repo
}

func TestRegister_CreatesUserAndIssuesTokens(t *testing.T) {
	svc, repo := newAuthService()

	u, access, refresh, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Dev@Example.COM ",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "dev@example.com" {
		t.Fatalf("email must be normalized, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("returned user must not expose the password hash")
	}
	if access == "" || refresh == "" {
		t.Fatalf("both tokens must be issued")
	}
	stored := repo.byEmail["dev@example.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "correct horse battery" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	in := RegisterInput{Email: "dev@example.com", Password: "correct horse battery"}
	if _, _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	svc, _ := newAuthService()

	cases := []RegisterInput{
		{Email: "", Password: "correct horse battery"},
		{Email: "dev@example.com", Password: "short"},
		{Email: "dev@example.com", Password: "        "},
	}
	for _, in := range cases {
		if _, _, _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	if _, _, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "DEV@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("login with case-insensitive email: %v", err)
	}

	if _, _, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "dev@example.com",
		Password: "wrong password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, _, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look identical to a bad password, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthService()
	_, access, refresh, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newAccess, newRefresh, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatalf("refresh must issue a fresh token pair")
	}

	if _, _, err := svc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("an access token must not pass as a refresh token, got %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefresh_DeletedUser(t *testing.T) {
	svc, repo := newAuthService()
	u, _, refresh, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	delete(repo.byID, u.ID)
	if _, _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("a token for a deleted user must be rejected, got %v", err)
	}
}
