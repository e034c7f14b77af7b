package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"gorm.io/gorm"
)

type AdminRepo interface {
	Create(ctx context.Context, a *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type adminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) AdminRepo { return &adminRepo{db: db} }

func (r *adminRepo) Create(ctx context.Context, a *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var a models.AdminUser
	err := r.db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *adminRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Where("lower(email) = lower(?)", email).Count(&cnt).Error
	return cnt > 0, err
}
