package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartbay/kartbay/internal/events"
	"github.com/kartbay/kartbay/internal/gateway"
	"github.com/kartbay/kartbay/internal/logging"
	"github.com/kartbay/kartbay/internal/models"
	"github.com/kartbay/kartbay/internal/repo"
)

const paymentCurrency = "INR"

var decimalHundred = decimal.NewFromInt(100)

type PaymentService struct {
	Repo    *repo.GormRepo
	Gateway gateway.Client
	Secret  []byte
	Events  events.Publisher
}

type InitiateResult struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	OrderNumber    string `json:"orderNumber"`
}

// Initiate creates the remote payment intent for an order. It is
// idempotent: when a gateway order already exists it is returned unchanged
// and no second remote intent is created.
func (s *PaymentService) Initiate(ctx context.Context, customerID, orderID uint) (*InitiateResult, error) {
	order, err := s.Repo.OrderByID(ctx, customerID, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	if order.Status == models.StatusPaid {
		return nil, fmt.Errorf("%w", ErrAlreadyPaid)
	}

	amount := minorUnits(order)
	if order.GatewayOrderID != "" {
		return &InitiateResult{
			GatewayOrderID: order.GatewayOrderID,
			Amount:         amount,
			Currency:       paymentCurrency,
			OrderNumber:    order.OrderNumber,
		}, nil
	}

	remote, err := s.Gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		Amount:   amount,
		Currency: paymentCurrency,
		Receipt:  order.OrderNumber,
		Notes: map[string]string{
			"orderId":    fmt.Sprint(order.ID),
			"customerId": fmt.Sprint(order.CustomerID),
		},
	})
	if err != nil {
		return nil, err
	}

	order.GatewayOrderID = remote.ID
	order.Status = models.StatusPaymentPending
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, order.OrderNumber, map[string]any{
		"type":           "payment_initiated",
		"orderNumber":    order.OrderNumber,
		"gatewayOrderID": remote.ID,
		"amount":         amount,
	})
	return &InitiateResult{
		GatewayOrderID: remote.ID,
		Amount:         remote.Amount,
		Currency:       remote.Currency,
		OrderNumber:    order.OrderNumber,
	}, nil
}

type VerifyInput struct {
	OrderID          uint
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// Verify checks the client-submitted proof of payment. A signature mismatch
// moves the order to FAILED; a match persists the payment correlation and
// moves it to PAID.
func (s *PaymentService) Verify(ctx context.Context, customerID uint, in VerifyInput) (*models.Order, error) {
	if in.OrderID == 0 || in.GatewayOrderID == "" || in.GatewayPaymentID == "" || in.Signature == "" {
		return nil, fmt.Errorf("%w: all payment details are required", ErrInvalidArgument)
	}

	order, err := s.Repo.OrderForVerification(ctx, customerID, in.OrderID, in.GatewayOrderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	if !gateway.VerifyPaymentSignature(s.Secret, in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		order.Status = models.StatusFailed
		if err := s.Repo.SaveOrder(ctx, order); err != nil {
			return nil, err
		}
		s.publish(ctx, order.OrderNumber, map[string]any{
			"type":        "payment_failed",
			"orderNumber": order.OrderNumber,
			"reason":      "signature mismatch",
		})
		return nil, fmt.Errorf("%w", ErrVerificationFailed)
	}

	order.GatewayPaymentID = in.GatewayPaymentID
	order.GatewaySignature = in.Signature
	order.Status = models.StatusPaid
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, order.OrderNumber, map[string]any{
		"type":        "payment_verified",
		"orderNumber": order.OrderNumber,
		"paymentID":   in.GatewayPaymentID,
	})
	return order, nil
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook processes an asynchronous gateway callback. It fails closed
// on a bad signature and is idempotent under duplicate delivery; unknown
// gateway order ids are logged and ignored because the callback is the
// gateway's event, not a customer request.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, headerSignature string) error {
	l := logging.FromContext(ctx)

	if !gateway.VerifyWebhookSignature(s.Secret, body, headerSignature) {
		return fmt.Errorf("%w", ErrInvalidSignature)
	}

	var evt webhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("%w: malformed webhook body", ErrInvalidArgument)
	}
	payment := evt.Payload.Payment.Entity

	switch evt.Event {
	case "payment.captured":
		changed, err := s.Repo.MarkOrderPaid(ctx, payment.OrderID, payment.ID)
		if err != nil {
			return err
		}
		if !changed {
			l.Info("webhook_capture_noop", "gateway_order_id", payment.OrderID)
			return nil
		}
		s.publish(ctx, payment.OrderID, map[string]any{
			"type":           "payment_captured",
			"eventID":        uuid.NewString(),
			"gatewayOrderID": payment.OrderID,
			"paymentID":      payment.ID,
		})
		l.Info("webhook_order_paid", "gateway_order_id", payment.OrderID)

	case "payment.failed":
		changed, err := s.Repo.MarkOrderFailed(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		if !changed {
			l.Info("webhook_failed_unknown_order", "gateway_order_id", payment.OrderID)
			return nil
		}
		s.publish(ctx, payment.OrderID, map[string]any{
			"type":           "payment_failed",
			"eventID":        uuid.NewString(),
			"gatewayOrderID": payment.OrderID,
		})
		l.Info("webhook_order_failed", "gateway_order_id", payment.OrderID)

	default:
		l.Info("webhook_event_ignored", "event", evt.Event)
	}
	return nil
}

type PaymentDetails struct {
	Payment     *gateway.Payment   `json:"payment"`
	OrderStatus models.OrderStatus `json:"orderStatus"`
}

func (s *PaymentService) Details(ctx context.Context, customerID, orderID uint) (*PaymentDetails, error) {
	order, err := s.Repo.OrderByID(ctx, customerID, orderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	if order.GatewayPaymentID == "" {
		return nil, fmt.Errorf("%w: no payment found for this order", ErrNotFound)
	}

	payment, err := s.Gateway.FetchPayment(ctx, order.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	return &PaymentDetails{Payment: payment, OrderStatus: order.Status}, nil
}

// minorUnits converts the order total from decimal major units to the
// gateway's integer minor units (e.g. rupees → paise).
func minorUnits(order *models.Order) int64 {
	return order.Total.Mul(decimalHundred).Round(0).IntPart()
}

func (s *PaymentService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Events.Publish(ctx, events.TopicPayments, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", event["type"], "error", err)
	}
}
