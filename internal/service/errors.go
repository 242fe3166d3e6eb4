package service

import "errors"

// Sentinel errors for the HTTP boundary to map. Ownership violations use
// ErrNotFound so callers cannot distinguish another customer's resource
// from an absent one.
var (
	ErrInvalidArgument    = errors.New("invalid argument")            // 400
	ErrNotFound           = errors.New("not found")                   // 404
	ErrUnauthorized       = errors.New("unauthorized")                // 401
	ErrConflict           = errors.New("conflict")                    // 409
	ErrUnavailable        = errors.New("product is not available")    // 400
	ErrEmptyCart          = errors.New("cart is empty")               // 400
	ErrInvalidTransition  = errors.New("invalid status transition")   // 400
	ErrAlreadyPaid        = errors.New("order already paid")          // 400
	ErrVerificationFailed = errors.New("payment verification failed") // 400
	ErrInvalidSignature   = errors.New("invalid webhook signature")   // 400
)
