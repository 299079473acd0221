// Package errors provides structured error types for the pulse service.
//
// Errors carry a machine-readable code, a human-readable message, an
// optional cause, and optional context. Callers branch on the code via
// CodeOf or errors.As rather than matching message strings:
//
//	if apperrors.CodeOf(err) == apperrors.ErrCodeResolutionFailed {
//	    // degrade gracefully
//	}
//
// The codes map one-to-one onto the failure kinds the HTTP surface exposes:
// startup failures (SOURCE_NOT_FOUND, SOURCE_FORMAT) are fatal before
// serving, NOT_FOUND and INVALID_REQUEST surface as 404/400, and
// RESOLUTION_FAILED is always recovered to a 400, never a 5xx.
package errors
