package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultCaptureTimeout = 30 * time.Second
	lowStockThreshold     = 10
)

type orderService struct {
	repo           *repository.Repository
	notifier       Notifier
	events         EventBus
	log            *zap.Logger
	captureTimeout time.Duration
	now            func() time.Time
}

// Notifier и events могут быть nil — рассылка и события тогда отключены
func NewOrderService(repo *repository.Repository, notifier Notifier, events EventBus, log *zap.Logger, captureTimeout time.Duration) OrderService {
	if captureTimeout <= 0 {
		captureTimeout = defaultCaptureTimeout
	}
	return &orderService{
		repo:           repo,
		notifier:       notifier,
		events:         events,
		log:            log,
		captureTimeout: captureTimeout,
		now:            time.Now,
	}
}

// допустимые переходы: только вперёд, CANCELLED из PENDING/PAID
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:      {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range in.Items {
		// верхняя граница: количество дальше идёт в int32-арифметику запаса
		if it.Quantity == 0 || it.Quantity > math.MaxInt32 {
			return nil, ErrQuantityInvalid
		}
	}

	ids := make([]uuid.UUID, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.repo.Products.BatchGetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &ProductsNotFoundError{IDs: missing}
	}

	// Цены авторитетны на сервере: присланная цена и итог сверяются с каталогом
	// и текущей стоимостью доставки, расхождение отклоняется.
	var itemsTotal int64
	for _, it := range in.Items {
		p := byID[it.ProductID]
		if it.UnitPriceCents != p.PriceCents {
			return nil, ErrPriceMismatch
		}
		itemsTotal += int64(it.Quantity) * p.PriceCents
	}

	shipping, err := s.repo.Shipping.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	var shippingCents int64
	if shipping != nil {
		shippingCents = shipping.CostCents
	}
	if in.TotalPriceCents != itemsTotal+shippingCents {
		return nil, ErrTotalMismatch
	}

	now := s.now()
	order := &models.Order{
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		Address:         strings.TrimSpace(in.Address),
		TotalPriceCents: in.TotalPriceCents,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// заказ и позиции вставляются атомарно; запас не трогаем до оплаты
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.OrderItem{
				OrderID:        order.ID,
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
				Size:           it.Size,
				Color:          it.Color,
				CreatedAt:      now,
			})
		}
		return tx.OrderItems.BulkCreate(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(created.Items))
		for _, it := range created.Items {
			evItems = append(evItems, OrderItemEvent{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				PriceCents: it.UnitPriceCents,
			})
		}
		if err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:    created.ID,
			Email:      created.CustomerEmail,
			Items:      evItems,
			TotalCents: created.TotalPriceCents,
			CreatedAt:  created.CreatedAt,
		}); err != nil {
			s.log.Warn("publish order.created failed", zap.String("order_id", created.ID.String()), zap.Error(err))
		}
	}

	return created, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	limit, offset := pageToOffset(f.Page, f.Limit)
	return s.repo.Orders.List(ctx, repository.OrderListFilter{
		Status: f.Status,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *orderService) CapturePayment(ctx context.Context, in CapturePaymentInput) (*models.Payment, error) {
	ord, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	currency := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if currency == "" {
		currency = "USD"
	}

	now := s.now()
	payment := &models.Payment{
		OrderID:         ord.ID,
		ProviderOrderID: in.ProviderOrderID,
		ProviderPayerID: in.ProviderPayerID,
		Status:          in.Status,
		AmountCents:     in.AmountCents,
		CurrencyCode:    currency,
		PaidAt:          now,
		CreatedAt:       now,
	}

	// Неуспешные попытки тоже фиксируются — аудит платежей
	if in.Status != models.PaymentStatusCompleted {
		if err := s.repo.Payments.Create(ctx, payment); err != nil {
			return nil, err
		}
		return payment, nil
	}

	// Повторный захват оплаченного заказа — no-op, повторного списания не бывает
	if ord.Status != models.OrderStatusPending {
		existing, err := s.repo.Payments.GetCompletedByOrderID(ctx, ord.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		if ord.Status == models.OrderStatusCancelled {
			return nil, ErrOrderCancelled
		}
		return nil, ErrOrderAlreadyPaid
	}

	if in.AmountCents != ord.TotalPriceCents {
		return nil, ErrAmountMismatch
	}

	// Списание запаса, смена статуса и запись платежа — одна транзакция с
	// ограничением по времени: зависшая транзакция падает, заказ не меняется.
	txCtx, cancel := context.WithTimeout(ctx, s.captureTimeout)
	defer cancel()

	err = s.repo.WithTx(txCtx, func(tx *repository.Repository) error {
		// Сначала атомарный перевод PENDING -> PAID: строку заказа из двух
		// параллельных захватов получает ровно один, второй видит 0 строк
		claimed, err := tx.Orders.UpdateStatusIfCurrent(txCtx, ord.ID, models.OrderStatusPending, models.OrderStatusPaid)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrOrderAlreadyPaid
		}

		for _, it := range ord.Items {
			ok, err := tx.Products.DecrementStock(txCtx, it.ProductID, int32(it.Quantity))
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{ProductID: it.ProductID, Requested: it.Quantity}
			}
		}

		return tx.Payments.Create(txCtx, payment)
	})
	if err != nil {
		// Проигравший параллельный захват возвращает платёж победителя — тот же
		// no-op, что и при повторном захвате уже оплаченного заказа
		if errors.Is(err, ErrOrderAlreadyPaid) {
			existing, lookupErr := s.repo.Payments.GetCompletedByOrderID(ctx, ord.ID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil {
				return existing, nil
			}
			fresh, lookupErr := s.repo.Orders.GetByID(ctx, ord.ID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if fresh != nil && fresh.Status == models.OrderStatusCancelled {
				return nil, ErrOrderCancelled
			}
			return nil, ErrOrderAlreadyPaid
		}

		// Нехватка запаса остаётся в истории платежей как FAILED; транзиентные
		// ошибки БД не фиксируются — вызывающий может повторить захват целиком
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			failed := &models.Payment{
				OrderID:         ord.ID,
				ProviderOrderID: in.ProviderOrderID,
				ProviderPayerID: in.ProviderPayerID,
				Status:          models.PaymentStatusFailed,
				AmountCents:     in.AmountCents,
				CurrencyCode:    currency,
				PaidAt:          now,
				CreatedAt:       now,
			}
			if createErr := s.repo.Payments.Create(ctx, failed); createErr != nil {
				s.log.Error("record failed payment attempt", zap.String("order_id", ord.ID.String()), zap.Error(createErr))
			}
		}
		return nil, err
	}

	paid, err := s.repo.Orders.GetByID(ctx, ord.ID)
	if err != nil {
		return nil, err
	}

	// Письма после коммита: неудача отправки логируется и не откатывает оплату
	if s.notifier != nil {
		if err := s.notifier.SendPaymentConfirmation(ctx, paid, payment); err != nil {
			s.log.Warn("send payment confirmation failed", zap.String("order_id", paid.ID.String()), zap.Error(err))
		}
		if err := s.notifier.SendOrderConfirmation(ctx, paid); err != nil {
			s.log.Warn("send order confirmation failed", zap.String("order_id", paid.ID.String()), zap.Error(err))
		}
	}

	if s.events != nil {
		if err := s.events.PublishOrderPaid(ctx, OrderPaidEvent{
			OrderID:    paid.ID,
			PaymentID:  payment.ID,
			TotalCents: paid.TotalPriceCents,
			PaidAt:     payment.PaidAt,
		}); err != nil {
			s.log.Warn("publish order.paid failed", zap.String("order_id", paid.ID.String()), zap.Error(err))
		}
	}

	return payment, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	if !transitionAllowed(ord.Status, status) {
		return nil, &InvalidTransitionError{From: string(ord.Status), To: string(status)}
	}

	moved, err := s.repo.Orders.UpdateStatusIfCurrent(ctx, id, ord.Status, status)
	if err != nil {
		return nil, err
	}
	if !moved {
		// статус сменился между чтением и обновлением
		fresh, err := s.repo.Orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if fresh == nil {
			return nil, ErrOrderNotFound
		}
		return nil, &InvalidTransitionError{From: string(fresh.Status), To: string(status)}
	}

	updated, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == models.OrderStatusShipped && s.notifier != nil {
		if err := s.notifier.SendShippingUpdate(ctx, updated); err != nil {
			s.log.Warn("send shipping update failed", zap.String("order_id", updated.ID.String()), zap.Error(err))
		}
	}

	if s.events != nil {
		if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:   updated.ID,
			From:      string(ord.Status),
			To:        string(status),
			ChangedAt: s.now(),
		}); err != nil {
			s.log.Warn("publish order.status_changed failed", zap.String("order_id", updated.ID.String()), zap.Error(err))
		}
	}

	return updated, nil
}

func (s *orderService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.repo.Orders.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.Orders.SumTotalByStatus(ctx, models.OrderStatusPaid)
	if err != nil {
		return nil, err
	}

	pending := models.OrderStatusPending
	unpaid, err := s.repo.Orders.CountByStatus(ctx, &pending)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.repo.Products.ListLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalOrders:  total,
		RevenueCents: revenue,
		UnpaidOrders: unpaid,
		LowStock:     lowStock,
	}, nil
}
