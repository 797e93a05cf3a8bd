package order

import (
	"context"
	"fmt"
	"time"

	domain "shop_api/internal/domain/order"
	"shop_api/internal/domain/repository"
	"shop_api/pkg/logger"
)

// EventPublisher emits order lifecycle events. Publishing is always
// best-effort: a failure is logged and never surfaced to the client.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt domain.Event) error
}

// Scheduler queues the deferred pending->dispatched transition of a
// committed order.
type Scheduler interface {
	Schedule(orderID int64)
}

type Service struct {
	repo      repository.OrderRepository
	ledger    repository.PriceLedger
	scheduler Scheduler
	events    EventPublisher
	log       logger.Logger
}

func NewService(
	repo repository.OrderRepository,
	ledger repository.PriceLedger,
	scheduler Scheduler,
	events EventPublisher,
	log logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		scheduler: scheduler,
		events:    events,
		log:       log,
	}
}

// PlaceOrder runs the full placement pipeline: validate the submission,
// reconcile the claimed prices against the stored ones, store the order
// in one transaction, then schedule the deferred dispatch. No write
// happens unless validation and reconciliation both pass.
func (s *Service) PlaceOrder(ctx context.Context, sub *domain.Submission) (*domain.Order, error) {
	o, err := sub.Validate()
	if err != nil {
		return nil, err
	}

	pairs := o.PricePairs()
	matched, err := s.ledger.CountMatching(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("check prices: %w", err)
	}
	// A shortfall means some product id is unknown or its price is stale,
	// the aggregate count cannot tell which line is wrong.
	if matched != len(pairs) {
		return nil, domain.ErrPricesChanged
	}

	id, err := s.repo.Store(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	o.ID = id

	s.log.Info("received order", logger.Int64("order_id", id))

	s.publish(ctx, domain.Event{
		Type:       domain.EventOrderPlaced,
		OrderID:    id,
		Buyer:      o.Buyer,
		Address:    o.Address,
		OccurredAt: time.Now().UTC(),
		Lines:      o.Lines,
	})

	s.scheduler.Schedule(id)

	return o, nil
}

// GetOrder reconstructs the stored order view for status retrieval.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) publish(ctx context.Context, evt domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(ctx, evt); err != nil {
		s.log.Error("publish order event",
			logger.String("type", evt.Type),
			logger.Int64("order_id", evt.OrderID),
			logger.Error(err),
		)
	}
}
