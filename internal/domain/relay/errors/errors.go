// Package errors contains domain-specific errors for the relay domain
package errors

import (
	pkgerrors "github.com/mexanickx/mexanicke/pkg/errors"
)

// Domain errors for relay operations
var (
	ErrInvalidLink     = pkgerrors.NewValidationError("no supported link found in message")
	ErrAPIFailure      = pkgerrors.NewUpstreamError("extraction API failure")
	ErrNoMedia         = pkgerrors.NewNotFoundError("descriptor has neither video nor images")
	ErrEmptyAlbum      = pkgerrors.NewNotFoundError("album has no usable images")
	ErrNetwork         = pkgerrors.NewNetworkError("media stream failed")
	ErrTooLarge        = pkgerrors.NewTooLargeError("media exceeds deliverable size")
	ErrPayloadTooLarge = pkgerrors.NewTooLargeError("platform rejected payload as too large")
	ErrDecodeImage     = pkgerrors.NewValidationError("image cannot be decoded")
	ErrDeliveryFailed  = pkgerrors.NewInternalError("media delivery failed")
)
