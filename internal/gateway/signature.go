package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment computes the client-side verification signature:
// HMAC-SHA256(secret, "{gatewayOrderID}|{gatewayPaymentID}") as lowercase hex.
func SignPayment(secret []byte, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyPaymentSignature(secret []byte, gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := SignPayment(secret, gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignWebhook computes the callback signature: HMAC-SHA256 over the raw
// request body as lowercase hex.
func SignWebhook(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature authenticates a callback by recomputing
// HMAC-SHA256 over the raw request body.
func VerifyWebhookSignature(secret, body []byte, signature string) bool {
	expected := SignWebhook(secret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
