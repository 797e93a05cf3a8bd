package order

import (
	"context"
	"sync"
	"time"

	domain "shop_api/internal/domain/order"
	"shop_api/internal/domain/repository"
	"shop_api/pkg/logger"
)

// Dispatcher marks orders dispatched a fixed delay after their commit,
// out of band of the request that placed them. Timers live only in
// memory: a restart loses pending transitions.
type Dispatcher struct {
	repo   repository.OrderRepository
	events EventPublisher
	log    logger.Logger
	delay  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDispatcher(
	repo repository.OrderRepository,
	events EventPublisher,
	log logger.Logger,
	delay time.Duration,
) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		repo:   repo,
		events: events,
		log:    log,
		delay:  delay,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule queues the dispatch of one committed order. It returns
// immediately, the transition fires after the configured delay.
func (d *Dispatcher) Schedule(orderID int64) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-d.ctx.Done():
			return
		case <-timer.C:
		}

		d.dispatch(orderID)
	}()
}

// Stop cancels pending timers and waits for in-flight dispatches.
func (d *Dispatcher) Stop() {
	d.cancel()
	d.wg.Wait()
}

// dispatch performs the single status update. Failures are logged and
// dropped, there is no client left to report them to.
func (d *Dispatcher) dispatch(orderID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := d.repo.MarkDispatched(ctx, orderID); err != nil {
		d.log.Error("dispatch order", logger.Int64("order_id", orderID), logger.Error(err))
		return
	}

	d.log.Info("dispatched order", logger.Int64("order_id", orderID))

	if d.events != nil {
		evt := domain.Event{
			Type:       domain.EventOrderDispatched,
			OrderID:    orderID,
			OccurredAt: time.Now().UTC(),
		}
		if err := d.events.PublishOrderEvent(ctx, evt); err != nil {
			d.log.Error("publish order event",
				logger.String("type", evt.Type),
				logger.Int64("order_id", orderID),
				logger.Error(err),
			)
		}
	}
}
