package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and gateways return
// these (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: record or cache entry does not exist (or has expired)
// - ErrUnavailable: upstream or backing store temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
