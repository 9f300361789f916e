package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/artifact"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/domain"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/inventory"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/metrics"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/notifier"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/archive_repo"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/order_repo"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/util"
)

// Service is the fulfillment pipeline. Per queued message it performs
// idempotent intake, stock validation, persistence, invoice generation
// and customer notification, and reports one Outcome per message so the
// queue can redeliver only the failed ones.
//
// Progress is tracked on the order record itself
// (created → stock_checked → persisted → invoiced → notified → done),
// so a redelivered message resumes at the first incomplete step instead
// of repeating completed side effects. Only notification is not
// idempotent: it is best-effort and never retried once the state has
// advanced past it.
type Service struct {
	orders    order_repo.OrderRepository
	archive   archive_repo.ArchiveRepository
	artifacts artifact.Store
	stock     inventory.Checker
	notifier  notifier.Notifier
	metrics   *metrics.Registry
	workers   int
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	orders order_repo.OrderRepository,
	archive archive_repo.ArchiveRepository,
	artifacts artifact.Store,
	stock inventory.Checker,
	n notifier.Notifier,
	m *metrics.Registry,
	workers int,
	logger *zap.Logger,
) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		orders:    orders,
		archive:   archive,
		artifacts: artifacts,
		stock:     stock,
		notifier:  n,
		metrics:   m,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessBatch processes every envelope independently and returns one
// outcome per envelope, in input order. Batch members run on a bounded
// worker pool; one message's failure never aborts its siblings.
func (s *Service) ProcessBatch(ctx context.Context, envelopes []Envelope) []Outcome {
	outcomes := make([]Outcome, len(envelopes))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range envelopes {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = s.processEnvelope(ctx, envelopes[i])
		}(i)
	}
	wg.Wait()
	return outcomes
}

func (s *Service) processEnvelope(ctx context.Context, env Envelope) Outcome {
	msg, err := ParseIntakeMessage(env.Body)
	if err != nil {
		s.metrics.OrdersFailed.Inc()
		s.logger.Error("Discarding malformed intake message",
			zap.String("envelope_id", env.ID),
			zap.Error(err))
		return Outcome{EnvelopeID: env.ID, Success: false, FailureReason: err.Error()}
	}

	orderID := msg.RequestID
	if orderID == "" {
		orderID = util.GenerateOrderToken()
		s.logger.Warn("Intake message without idempotency token, generated order id",
			zap.String("envelope_id", env.ID),
			zap.String("order_id", orderID))
	}

	order, alreadyDone, err := s.resolveOrder(ctx, orderID, msg)
	if err != nil {
		s.metrics.OrdersFailed.Inc()
		s.logger.Error("Failed to resolve order", zap.String("order_id", orderID), zap.Error(err))
		return Outcome{EnvelopeID: env.ID, OrderID: orderID, Success: false, FailureReason: err.Error()}
	}
	if alreadyDone {
		s.metrics.OrdersDuplicate.Inc()
		s.logger.Info("Order already fulfilled, treating delivery as no-op", zap.String("order_id", orderID))
		return Outcome{EnvelopeID: env.ID, OrderID: orderID, Success: true}
	}

	if err := s.advance(ctx, order); err != nil {
		s.metrics.OrdersFailed.Inc()
		s.logger.Error("Order fulfillment failed",
			zap.String("order_id", order.ID),
			zap.String("state", string(order.State)),
			zap.Error(err))
		return Outcome{EnvelopeID: env.ID, OrderID: order.ID, Success: false, FailureReason: err.Error()}
	}

	s.metrics.OrdersProcessed.Inc()
	s.logger.Info("Order fulfilled",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)))
	return Outcome{EnvelopeID: env.ID, OrderID: order.ID, Success: true}
}

// resolveOrder creates the order record if absent, or loads the
// existing one so processing resumes where the previous delivery
// stopped. The conditional create is the idempotency gate: a concurrent
// duplicate delivery loses the insert and resumes instead of
// overwriting.
func (s *Service) resolveOrder(ctx context.Context, orderID string, msg *IntakeMessage) (*domain.Order, bool, error) {
	order, err := domain.NewOrder(orderID, msg.Name, msg.Firstname, msg.Email, msg.Address,
		msg.Product, msg.Quantity, msg.Price, s.now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	created, err := s.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		return nil, false, fmt.Errorf("create order record: %w", err)
	}
	if created {
		return order, false, nil
	}

	existing, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, false, fmt.Errorf("load existing order record: %w", err)
	}
	if existing.State == domain.StateDone {
		return existing, true, nil
	}
	s.logger.Info("Resuming partially fulfilled order",
		zap.String("order_id", orderID),
		zap.String("state", string(existing.State)))
	return existing, false, nil
}

// advance walks the order through its remaining fulfillment steps. Any
// step failure (except notification) leaves the persisted state at the
// last completed step, so the next delivery resumes there.
func (s *Service) advance(ctx context.Context, order *domain.Order) error {
	for order.State != domain.StateDone {
		switch order.State {
		case domain.StateCreated:
			if err := s.checkStock(ctx, order); err != nil {
				return err
			}
		case domain.StateStockChecked:
			if err := s.archiveOrder(ctx, order); err != nil {
				return err
			}
		case domain.StatePersisted:
			if err := s.generateInvoice(ctx, order); err != nil {
				return err
			}
		case domain.StateInvoiced:
			s.notify(ctx, order)
			if err := s.setState(ctx, order, domain.StateNotified); err != nil {
				return err
			}
		case domain.StateNotified:
			if err := s.setState(ctx, order, domain.StateDone); err != nil {
				return err
			}
		default:
			return fmt.Errorf("order %s in unknown state %q", order.ID, order.State)
		}
	}
	return nil
}

func (s *Service) checkStock(ctx context.Context, order *domain.Order) error {
	res, err := s.stock.Check(ctx, order.Product, order.Quantity)
	if err != nil {
		return fmt.Errorf("stock check: %w", err)
	}
	order.ApplyStockResult(res.Available)
	if err := s.orders.SetStockResult(ctx, order.ID, order.Status, order.AvailableQty); err != nil {
		return fmt.Errorf("persist stock result: %w", err)
	}
	order.State = domain.StateStockChecked
	return nil
}

func (s *Service) archiveOrder(ctx context.Context, order *domain.Order) error {
	rec := &domain.ArchiveRecord{
		OrderID:    order.ID,
		ArchivedAt: s.now().UTC(),
		Status:     order.Status,
	}
	if err := s.archive.CreateIfAbsent(ctx, rec); err != nil {
		return fmt.Errorf("archive order: %w", err)
	}
	return s.setState(ctx, order, domain.StatePersisted)
}

func (s *Service) generateInvoice(ctx context.Context, order *domain.Order) error {
	if order.Status == domain.OrderStatusValid {
		data, err := json.Marshal(domain.NewInvoice(order))
		if err != nil {
			return fmt.Errorf("encode invoice: %w", err)
		}
		if err := s.artifacts.Put(ctx, InvoiceKey(order.ID), data); err != nil {
			return fmt.Errorf("store invoice: %w", err)
		}
		s.metrics.InvoicesGenerated.Inc()
	}
	return s.setState(ctx, order, domain.StateInvoiced)
}

// notify dispatches the confirmation or rejection mail. A send failure
// is logged and counted but never fails the order: notification is
// at-most-once and not retried on redelivery.
func (s *Service) notify(ctx context.Context, order *domain.Order) {
	var body string
	if order.Status == domain.OrderStatusValid {
		body = notifier.ConfirmationBody(order)
	} else {
		body = notifier.RejectionBody(order)
	}

	if err := s.notifier.Send(ctx, order.Email, notifier.Subject(order.ID), body); err != nil {
		s.metrics.NotifierFailures.Inc()
		s.logger.Error("Failed to notify customer, completing order anyway",
			zap.String("order_id", order.ID),
			zap.String("recipient", order.Email),
			zap.Error(err))
		return
	}
	s.metrics.NotificationsSent.Inc()
}

func (s *Service) setState(ctx context.Context, order *domain.Order, state domain.FulfillmentState) error {
	if err := s.orders.SetState(ctx, order.ID, state); err != nil {
		return fmt.Errorf("advance order to %s: %w", state, err)
	}
	order.State = state
	return nil
}
