package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartbay/kartbay/internal/events"
	"github.com/kartbay/kartbay/internal/gateway"
	"github.com/kartbay/kartbay/internal/models"
)

var testSecret = []byte("test-gateway-secret")

type fakeGateway struct {
	createCalls int
	lastRequest gateway.CreateOrderRequest
	payment     *gateway.Payment
}

func (f *fakeGateway) CreateOrder(_ context.Context, req gateway.CreateOrderRequest) (*gateway.GatewayOrder, error) {
	f.createCalls++
	f.lastRequest = req
	return &gateway.GatewayOrder{
		ID:       fmt.Sprintf("order_fake_%d", f.createCalls),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) FetchPayment(_ context.Context, paymentID string) (*gateway.Payment, error) {
	if f.payment != nil && f.payment.ID == paymentID {
		return f.payment, nil
	}
	return nil, fmt.Errorf("unexpected status 404: payment not found")
}

func newPaymentFixture(t *testing.T) (*PaymentService, *fakeGateway, *models.Order) {
	t.Helper()

	r := newTestRepo(t)
	gw := &fakeGateway{}
	payments := &PaymentService{Repo: r, Gateway: gw, Secret: testSecret, Events: events.Noop{}}

	orders := &OrderService{Repo: r, Events: events.Noop{}}
	cart := &CartService{Repo: r}
	ctx := context.Background()

	customer := seedCustomer(t, r, "pay@example.com")
	product := seedProduct(t, r, "SKU-PAY-1", "250.00")
	_, err := cart.AddToCart(ctx, customer.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := orders.Create(ctx, customer.ID, CreateOrderInput{
		AddressID: defaultAddressID(t, r, customer.ID),
	})
	require.NoError(t, err)
	return payments, gw, order
}

func TestPaymentService_Initiate(t *testing.T) {
	t.Parallel()

	payments, gw, order := newPaymentFixture(t)
	ctx := context.Background()

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "order_fake_1", result.GatewayOrderID)
	assert.Equal(t, "INR", result.Currency)
	// 345.00 total becomes 34500 paise.
	assert.EqualValues(t, 34500, result.Amount)
	assert.Equal(t, order.OrderNumber, gw.lastRequest.Receipt)

	stored, err := payments.Repo.OrderByID(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaymentPending, stored.Status)
	assert.Equal(t, "order_fake_1", stored.GatewayOrderID)
}

func TestPaymentService_Initiate_Idempotent(t *testing.T) {
	t.Parallel()

	payments, gw, order := newPaymentFixture(t)
	ctx := context.Background()

	first, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	second, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	assert.Equal(t, first.GatewayOrderID, second.GatewayOrderID)
	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, 1, gw.createCalls)
}

func TestPaymentService_Initiate_Guards(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	_, err := payments.Initiate(ctx, order.CustomerID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = payments.Initiate(ctx, order.CustomerID+1, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	order.Status = models.StatusPaid
	require.NoError(t, payments.Repo.SaveOrder(ctx, order))
	_, err = payments.Initiate(ctx, order.CustomerID, order.ID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestPaymentService_Verify_Succeeds(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	signature := gateway.SignPayment(testSecret, result.GatewayOrderID, "pay_1")
	verified, err := payments.Verify(ctx, order.CustomerID, VerifyInput{
		OrderID:          order.ID,
		GatewayOrderID:   result.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        signature,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, verified.Status)
	assert.Equal(t, "pay_1", verified.GatewayPaymentID)
}

func TestPaymentService_Verify_SignatureMismatch(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	_, err = payments.Verify(ctx, order.CustomerID, VerifyInput{
		OrderID:          order.ID,
		GatewayOrderID:   result.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "not-the-right-signature",
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)

	stored, err := payments.Repo.OrderByID(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)
}

func TestPaymentService_Verify_RequiresPendingOrder(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	// Never initiated, so the order is not in PAYMENT_PENDING.
	signature := gateway.SignPayment(testSecret, "order_fake_1", "pay_1")
	_, err := payments.Verify(ctx, order.CustomerID, VerifyInput{
		OrderID:          order.ID,
		GatewayOrderID:   "order_fake_1",
		GatewayPaymentID: "pay_1",
		Signature:        signature,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = payments.Verify(ctx, order.CustomerID, VerifyInput{OrderID: order.ID})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func webhookBody(t *testing.T, event, paymentID, gatewayOrderID string) ([]byte, string) {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":       paymentID,
					"order_id": gatewayOrderID,
				},
			},
		},
	})
	require.NoError(t, err)
	return body, gateway.SignWebhook(testSecret, body)
}

func TestPaymentService_Webhook_CapturedIsIdempotent(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	body, sig := webhookBody(t, "payment.captured", "pay_wh_1", result.GatewayOrderID)
	require.NoError(t, payments.HandleWebhook(ctx, body, sig))

	stored, err := payments.Repo.OrderByID(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, stored.Status)
	assert.Equal(t, "pay_wh_1", stored.GatewayPaymentID)

	// Duplicate delivery is a no-op, not an error.
	require.NoError(t, payments.HandleWebhook(ctx, body, sig))
}

func TestPaymentService_Webhook_FailedAndUnknown(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	body, sig := webhookBody(t, "payment.failed", "pay_wh_2", result.GatewayOrderID)
	require.NoError(t, payments.HandleWebhook(ctx, body, sig))

	stored, err := payments.Repo.OrderByID(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)

	// Unknown gateway order ids and unknown event types are ignored.
	body, sig = webhookBody(t, "payment.captured", "pay_x", "order_unknown")
	require.NoError(t, payments.HandleWebhook(ctx, body, sig))

	body, sig = webhookBody(t, "payment.refunded", "pay_x", result.GatewayOrderID)
	require.NoError(t, payments.HandleWebhook(ctx, body, sig))
}

func TestPaymentService_Webhook_BadSignatureFailsClosed(t *testing.T) {
	t.Parallel()

	payments, _, order := newPaymentFixture(t)
	ctx := context.Background()

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	body, _ := webhookBody(t, "payment.captured", "pay_wh_3", result.GatewayOrderID)
	err = payments.HandleWebhook(ctx, body, "bogus")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	stored, err := payments.Repo.OrderByID(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaymentPending, stored.Status)
}

func TestPaymentService_Details(t *testing.T) {
	t.Parallel()

	payments, gw, order := newPaymentFixture(t)
	ctx := context.Background()

	_, err := payments.Details(ctx, order.CustomerID, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	result, err := payments.Initiate(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)

	signature := gateway.SignPayment(testSecret, result.GatewayOrderID, "pay_det_1")
	_, err = payments.Verify(ctx, order.CustomerID, VerifyInput{
		OrderID:          order.ID,
		GatewayOrderID:   result.GatewayOrderID,
		GatewayPaymentID: "pay_det_1",
		Signature:        signature,
	})
	require.NoError(t, err)

	gw.payment = &gateway.Payment{
		ID:      "pay_det_1",
		OrderID: result.GatewayOrderID,
		Amount:  34500,
		Status:  "captured",
	}
	details, err := payments.Details(ctx, order.CustomerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, details.OrderStatus)
	assert.Equal(t, "pay_det_1", details.Payment.ID)
}
