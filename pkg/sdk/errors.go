package colbertdb

import "github.com/kailas-cloud/colbertdb/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation     = domain.ErrValidation
	ErrAuthentication = domain.ErrAuthentication
	ErrNotFound       = domain.ErrNotFound
	ErrTransport      = domain.ErrTransport
)

// Typed errors carrying details. Use errors.As() to extract.
type (
	AuthenticationError = domain.AuthenticationError
	NotFoundError       = domain.NotFoundError
	TransportError      = domain.TransportError
)
