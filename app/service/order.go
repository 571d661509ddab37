package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/courseplatform/ms-go-orders/app/entity"
	"github.com/courseplatform/ms-go-orders/app/factory"
	"github.com/courseplatform/ms-go-orders/app/gateway"
	"github.com/courseplatform/ms-go-orders/app/repository"
	"github.com/courseplatform/ms-go-orders/app/types"
	"github.com/courseplatform/ms-go-orders/config"
)

type orderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string, updatedAt time.Time) (bool, error)
	FindByID(ctx context.Context, id uint64) (*entity.Order, error)
	FindByExternalOrderID(ctx context.Context, externalOrderID string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error)
}

type paymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByOrderID(ctx context.Context, orderID uint64) (*entity.Payment, error)
}

type orderEventRepository interface {
	Create(ctx context.Context, event *entity.OrderEvent) error
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type signatureVerifier interface {
	Verify(externalOrderID, paymentRef, suppliedSignature string) bool
}

type paymentNotifier interface {
	PaymentSucceeded(ctx context.Context, order *entity.Order, payment *entity.Payment) error
}

// CheckoutOrder is what a client needs to open the gateway checkout: the
// gateway order reference plus the public key id. The service never sees
// payer credentials.
type CheckoutOrder struct {
	Order *entity.Order
	KeyID string
}

type OrderService struct {
	orderRepo   orderRepository
	paymentRepo paymentRepository
	eventRepo   orderEventRepository
	gateway     gateway.Client
	verifier    signatureVerifier
	tx          txRunner
	notifier    paymentNotifier
	gatewayCfg  config.GatewayConfig
	ordersCfg   config.OrdersConfig
	logger      logrus.FieldLogger
}

func NewOrderService(
	orderRepo orderRepository,
	paymentRepo paymentRepository,
	eventRepo orderEventRepository,
	gatewayClient gateway.Client,
	verifier signatureVerifier,
	tx txRunner,
	notifier paymentNotifier,
	gatewayCfg config.GatewayConfig,
	ordersCfg config.OrdersConfig,
) *OrderService {
	if ordersCfg.SettlementMethod == "" {
		ordersCfg.SettlementMethod = "RAZORPAY"
	}

	return &OrderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		eventRepo:   eventRepo,
		gateway:     gatewayClient,
		verifier:    verifier,
		tx:          tx,
		notifier:    notifier,
		gatewayCfg:  gatewayCfg,
		ordersCfg:   ordersCfg,
		logger:      factory.NewModuleLogger("order-service"),
	}
}

// CreateOrder registers the purchase with the gateway first; the local order
// row is only written once the gateway order exists. A persistence failure
// after that point leaves an orphaned gateway order, which is logged for
// manual reconciliation because it cannot be rolled back remotely.
func (s *OrderService) CreateOrder(ctx context.Context, req *types.CreateOrderRequest) (*CheckoutOrder, error) {
	if req.UserID == 0 || req.CourseID == 0 {
		return nil, ErrInvalidRequest
	}
	amountCents, err := types.MinorUnits(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, &gateway.CreateOrderInput{
		AmountMinor:    amountCents,
		Currency:       s.gatewayCfg.Currency,
		Receipt:        uuid.NewString(),
		PaymentCapture: s.gatewayCfg.PaymentCapture,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	now := time.Now().UTC()
	order := &entity.Order{
		UserID:          req.UserID,
		CourseID:        req.CourseID,
		AmountCents:     amountCents,
		Currency:        s.gatewayCfg.Currency,
		ExternalOrderID: gatewayOrder.ExternalOrderID,
		Status:          entity.OrderStatusCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		return s.eventRepo.Create(txCtx, &entity.OrderEvent{
			OrderID:   order.ID,
			EventType: "order_created",
			NewStatus: entity.OrderStatusCreated,
			CreatedAt: now,
		})
	})
	if err != nil {
		s.logger.WithError(err).
			WithField("external_order_id", gatewayOrder.ExternalOrderID).
			Error("Order persist failed after gateway order was created; reconcile manually")
		if errors.Is(err, repository.ErrOrderAlreadyExists) {
			return nil, ErrOrderAlreadyExists
		}
		return nil, err
	}

	return &CheckoutOrder{Order: order, KeyID: s.gateway.KeyID()}, nil
}

// VerifyPayment settles the order referenced by the gateway callback. The
// status transition, the payment row, and the audit event share one
// transaction; the conditional status update makes CREATED→PAID exactly-once
// when the gateway delivers the callback more than once or concurrently.
func (s *OrderService) VerifyPayment(ctx context.Context, req *types.VerifyPaymentRequest) (*entity.Payment, error) {
	if req.ExternalOrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return nil, ErrInvalidRequest
	}

	order, err := s.orderRepo.FindByExternalOrderID(ctx, req.ExternalOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !s.verifier.Verify(req.ExternalOrderID, req.PaymentID, req.Signature) {
		return nil, ErrSignatureMismatch
	}

	if order.Status == entity.OrderStatusPaid {
		return s.paymentRepo.FindByOrderID(ctx, order.ID)
	}
	if order.Status != entity.OrderStatusCreated {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidStatus, order.Status)
	}

	now := time.Now().UTC()
	var payment *entity.Payment
	settled := false

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		changed, err := s.orderRepo.UpdateStatus(txCtx, order.ID, entity.OrderStatusCreated, entity.OrderStatusPaid, now)
		if err != nil {
			return err
		}
		if !changed {
			// Lost the race against a concurrent callback.
			current, err := s.orderRepo.FindByID(txCtx, order.ID)
			if err != nil {
				return err
			}
			if current == nil {
				return ErrOrderNotFound
			}
			if current.Status != entity.OrderStatusPaid {
				return fmt.Errorf("%w: order is %s", ErrInvalidStatus, current.Status)
			}
			payment, err = s.paymentRepo.FindByOrderID(txCtx, order.ID)
			return err
		}

		payment = &entity.Payment{
			OrderID:    order.ID,
			PaymentRef: req.PaymentID,
			Method:     s.ordersCfg.SettlementMethod,
			Status:     entity.PaymentStatusSuccess,
			CreatedAt:  now,
		}
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}

		oldStatus := entity.OrderStatusCreated
		settled = true
		return s.eventRepo.Create(txCtx, &entity.OrderEvent{
			OrderID:   order.ID,
			EventType: "order_paid",
			OldStatus: &oldStatus,
			NewStatus: entity.OrderStatusPaid,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusPaid
	order.UpdatedAt = now

	if settled && s.notifier != nil {
		if err := s.notifier.PaymentSucceeded(ctx, order, payment); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("Payment notification failed")
		}
	}

	return payment, nil
}

// RefundOrder is a local bookkeeping transition. The gateway-side refund
// lives behind gateway.Client.RefundPayment and is not issued from here.
func (s *OrderService) RefundOrder(ctx context.Context, orderID uint64) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != entity.OrderStatusPaid {
		return nil, fmt.Errorf("%w: only paid orders can be refunded", ErrInvalidStatus)
	}

	now := time.Now().UTC()
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		changed, err := s.orderRepo.UpdateStatus(txCtx, order.ID, entity.OrderStatusPaid, entity.OrderStatusRefunded, now)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: only paid orders can be refunded", ErrInvalidStatus)
		}

		oldStatus := entity.OrderStatusPaid
		return s.eventRepo.Create(txCtx, &entity.OrderEvent{
			OrderID:   order.ID,
			EventType: "order_refunded",
			OldStatus: &oldStatus,
			NewStatus: entity.OrderStatusRefunded,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusRefunded
	order.UpdatedAt = now
	return order, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, id uint64) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}
