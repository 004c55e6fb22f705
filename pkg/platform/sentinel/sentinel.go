package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and gateway clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: entity already exists or uniqueness violated
// - ErrExpired: session or token has expired
// - ErrInvalidState: entity in the wrong state for the requested transition
// - ErrUnavailable: remote gateway or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
