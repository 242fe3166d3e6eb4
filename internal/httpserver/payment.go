package httpserver

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kartbay/kartbay/internal/logging"
	mwauth "github.com/kartbay/kartbay/internal/middleware/auth"
	"github.com/kartbay/kartbay/internal/service"
)

// WebhookSignatureHeader carries the gateway's HMAC over the raw body.
const WebhookSignatureHeader = "X-Razorpay-Signature"

type PaymentHTTP struct {
	Svc *service.PaymentService
}

type initiatePaymentRequest struct {
	OrderID uint `json:"orderId"`
}

func (h *PaymentHTTP) Initiate(c echo.Context) error {
	ctx := c.Request().Context()

	var req initiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "payment.initiate", err)
	}
	if req.OrderID == 0 {
		return fail(c, http.StatusBadRequest, "orderId is required")
	}

	result, err := h.Svc.Initiate(ctx, mwauth.CustomerID(c), req.OrderID)
	if err != nil {
		return respondError(c, "payment.initiate", err)
	}
	return ok(c, http.StatusOK, "payment initiated", result)
}

type verifyPaymentRequest struct {
	OrderID          uint   `json:"orderId"`
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
}

func (h *PaymentHTTP) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, "payment.verify", err)
	}

	order, err := h.Svc.Verify(ctx, mwauth.CustomerID(c), service.VerifyInput{
		OrderID:          req.OrderID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		return respondError(c, "payment.verify", err)
	}
	return ok(c, http.StatusOK, "payment verified", order)
}

// Webhook authenticates the raw body against the signature header before
// any state change. It is unauthenticated otherwise; the signature is the
// only credential.
func (h *PaymentHTTP) Webhook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.webhook")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Warn("webhook_body_read_failed", "error", err)
		return fail(c, http.StatusBadRequest, "cannot read body")
	}

	signature := c.Request().Header.Get(WebhookSignatureHeader)
	if err := h.Svc.HandleWebhook(ctx, body, signature); err != nil {
		return respondError(c, "payment.webhook", err)
	}
	return ok(c, http.StatusOK, "webhook processed", nil)
}

func (h *PaymentHTTP) Details(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "orderId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	details, err := h.Svc.Details(ctx, mwauth.CustomerID(c), id)
	if err != nil {
		return respondError(c, "payment.details", err)
	}
	return ok(c, http.StatusOK, "payment details fetched", details)
}
