package service

import (
	"context"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"
)

type ShippingService interface {
	// CurrentCost — последняя добавленная строка, 0 если истории нет
	CurrentCost(ctx context.Context) (int64, error)
	SetCost(ctx context.Context, costCents int64) (*models.ShippingCost, error)
}

type shippingService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewShippingService(repo *repository.Repository) ShippingService {
	return &shippingService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *shippingService) CurrentCost(ctx context.Context) (int64, error) {
	latest, err := s.repo.Shipping.GetLatest(ctx)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.CostCents, nil
}

func (s *shippingService) SetCost(ctx context.Context, costCents int64) (*models.ShippingCost, error) {
	if costCents < 0 {
		return nil, ErrShippingCostInvalid
	}
	// история не переписывается, только добавляется
	c := &models.ShippingCost{CostCents: costCents, CreatedAt: s.now()}
	if err := s.repo.Shipping.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
