package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"store-service/internal/hashing"
	"store-service/internal/models"
	"store-service/internal/repository"
	"store-service/internal/service"
	"store-service/internal/token"

	"github.com/google/uuid"
)

// MockAdminRepo
type MockAdminRepo struct {
	CreateFunc        func(ctx context.Context, a *models.AdminUser) error
	GetByEmailFunc    func(ctx context.Context, email string) (*models.AdminUser, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockAdminRepo) Create(ctx context.Context, a *models.AdminUser) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockAdminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

var _ repository.AdminRepo = (*MockAdminRepo)(nil)

func authFixture(t *testing.T, mock *MockAdminRepo) service.AdminAuthService {
	t.Helper()
	repos := &repository.Repository{Admins: mock}
	hasher := hashing.NewBcrypt(4)
	tokens := token.NewHSProvider("test-secret", "store-service", "store-admin")
	return service.NewAdminAuthService(repos, hasher, tokens, time.Hour)
}

func TestAdminLogin_Success(t *testing.T) {
	hasher := hashing.NewBcrypt(4)
	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	admin := &models.AdminUser{Email: "admin@example.com", PasswordHash: hash}
	auth := authFixture(t, &MockAdminRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.AdminUser, error) {
			return admin, nil
		},
	})

	result, err := auth.Login(context.Background(), "admin@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" || result.Email != "admin@example.com" {
		t.Fatalf("login result: %+v", result)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %v", result.ExpiresAt)
	}

	claims, err := auth.Validate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	hasher := hashing.NewBcrypt(4)
	hash, _ := hasher.Hash("right password")

	auth := authFixture(t, &MockAdminRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.AdminUser, error) {
			return &models.AdminUser{Email: email, PasswordHash: hash}, nil
		},
	})

	if _, err := auth.Login(context.Background(), "admin@example.com", "wrong password"); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("wrong password: err=%v", err)
	}
}

func TestAdminLogin_UnknownEmail(t *testing.T) {
	auth := authFixture(t, &MockAdminRepo{})

	// неизвестный email и неверный пароль неразличимы для клиента
	if _, err := auth.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("unknown email: err=%v", err)
	}
}

func TestAdminValidate_BadToken(t *testing.T) {
	auth := authFixture(t, &MockAdminRepo{})

	if _, err := auth.Validate(context.Background(), "not-a-jwt"); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("garbage token: err=%v", err)
	}

	// токен с другим секретом отвергается
	other := token.NewHSProvider("other-secret", "store-service", "store-admin")
	signed, _, err := other.SignAccess(context.Background(), uuid.New(), "admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.Validate(context.Background(), signed); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("foreign token: err=%v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	created := false
	mock := &MockAdminRepo{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return created, nil
		},
		CreateFunc: func(ctx context.Context, a *models.AdminUser) error {
			if a.PasswordHash == "" || a.PasswordHash == "secret password" {
				t.Fatalf("password must be stored hashed, got %q", a.PasswordHash)
			}
			created = true
			return nil
		},
	}
	repos := &repository.Repository{Admins: mock}
	hasher := hashing.NewBcrypt(4)

	ok, err := service.EnsureAdmin(context.Background(), repos, hasher, "admin@example.com", "secret password")
	if err != nil || !ok {
		t.Fatalf("first EnsureAdmin: ok=%v err=%v", ok, err)
	}

	ok, err = service.EnsureAdmin(context.Background(), repos, hasher, "admin@example.com", "secret password")
	if err != nil || ok {
		t.Fatalf("second EnsureAdmin must be no-op: ok=%v err=%v", ok, err)
	}
}
