package entity

import "errors"

var (
	// ErrInvalidSpotOrder is returned when a spot payment lacks a required field.
	ErrInvalidSpotOrder = errors.New("invalid spot order parameters")
	// ErrInvalidSymbol is returned when a trading pair symbol cannot be mapped to assets.
	ErrInvalidSymbol = errors.New("invalid trading pair symbol")
	// ErrInvalidPayment is returned when a payment request cannot be turned into a URI.
	ErrInvalidPayment = errors.New("invalid payment request")
	// ErrAssetNotFound is returned when the provider answers an asset request without data.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrNotConnected is returned by operations that need an authenticated session.
	ErrNotConnected = errors.New("session is not connected")
	// ErrHostBridgeNotImplemented marks the unfinished host wallet bridge integration.
	ErrHostBridgeNotImplemented = errors.New("host bridge integration not implemented")
)
