package auth

import (
	"context"
	"testing"
	"time"

	"github.com/adebayof/gromart-backend/pkg/config"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/adebayof/gromart-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	profile *models.Profile
	findErr error
	created *models.Profile
}

func (s *stubUserRepo) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.ID = uuid.New()
	s.created = profile
	return profile, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if s.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.profile, s.findErr
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type stubSessionManager struct {
	refreshToken string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "gromart-test",
		ExpirationMinutes: 15,
	}
}

func newTestService(t *testing.T, users *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       users,
		SessionManager: &stubSessionManager{refreshToken: "refresh-abc"},
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func hashedProfile(t *testing.T, password string) *models.Profile {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Profile{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		FullName:     "Ada Obi",
		PasswordHash: hash,
		Role:         enums.UserRoleCustomer,
	}
}

func TestLoginSuccess(t *testing.T) {
	users := &stubUserRepo{profile: hashedProfile(t, "correct horse battery")}
	svc := newTestService(t, users)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Ada@Example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken != "refresh-abc" {
		t.Fatalf("unexpected token pair: %+v", resp.Tokens)
	}
	if resp.User.Email != "ada@example.com" {
		t.Fatalf("unexpected user email %q", resp.User.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := &stubUserRepo{profile: hashedProfile(t, "correct horse battery")}
	svc := newTestService(t, users)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong password!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterCreatesCustomer(t *testing.T) {
	users := &stubUserRepo{}
	svc := newTestService(t, users)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "long enough pass",
		FullName: " Ada Obi ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if users.created == nil {
		t.Fatal("expected profile persisted")
	}
	if users.created.Email != "new@example.com" {
		t.Fatalf("email must be lowercased, got %q", users.created.Email)
	}
	if users.created.FullName != "Ada Obi" {
		t.Fatalf("full name must be trimmed, got %q", users.created.FullName)
	}
	if users.created.Role != enums.UserRoleCustomer {
		t.Fatalf("self-registration must yield customer role, got %s", users.created.Role)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &stubUserRepo{profile: hashedProfile(t, "some password")}
	svc := newTestService(t, users)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "ada@example.com",
		Password: "long enough pass",
		FullName: "Ada Obi",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}
