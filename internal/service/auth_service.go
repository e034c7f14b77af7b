package service

import (
	"context"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Email     string
}

type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Validate(ctx context.Context, token string) (*Claims, error)
}

type adminAuthService struct {
	repo   *repository.Repository
	hasher PasswordHasher
	tokens TokenProvider
	ttl    time.Duration
}

func NewAdminAuthService(repo *repository.Repository, hasher PasswordHasher, tokens TokenProvider, ttl time.Duration) AdminAuthService {
	return &adminAuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		ttl:    ttl,
	}
}

func (s *adminAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.repo.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// одинаковый ответ для неизвестного email и неверного пароля
	if admin == nil || !s.hasher.Compare(admin.PasswordHash, password) {
		return nil, ErrUnauthorized
	}

	token, exp, err := s.tokens.SignAccess(ctx, admin.ID, admin.Email, s.ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Email: admin.Email}, nil
}

func (s *adminAuthService) Validate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.ParseAndValidateAccess(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// EnsureAdmin создаёт администратора, если его ещё нет. Используется при миграции.
func EnsureAdmin(ctx context.Context, repo *repository.Repository, hasher PasswordHasher, email, password string) (created bool, err error) {
	exists, err := repo.Admins.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}
	if err := repo.Admins.Create(ctx, &models.AdminUser{Email: email, PasswordHash: hash}); err != nil {
		return false, err
	}
	return true, nil
}
