package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrStorageUnavailable = fmt.Errorf("durable storage unavailable")
	ErrMalformedRecord    = fmt.Errorf("malformed persisted record")
	ErrNotFound           = fmt.Errorf("record not found")

	// Permission errors
	ErrInvalidTier = fmt.Errorf("invalid user tier")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrUnknownDomain   = fmt.Errorf("unknown content domain")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
