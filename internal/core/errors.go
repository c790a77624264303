package core

import (
	"errors"
	"fmt"
)

// Error taxonomy roots. Handlers branch on these with errors.Is; the
// specific sentinels below wrap one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrInvariant  = errors.New("wallet balance invariant violated")
	ErrAdapter    = errors.New("adapter failure")
	ErrForbidden  = errors.New("forbidden")
)

var (
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrEmptyName          = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrEmptyCategory      = fmt.Errorf("%w: category must not be empty", ErrValidation)
	ErrInvalidKind        = fmt.Errorf("%w: unknown kind", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrUnknownWallet      = fmt.Errorf("%w: wallet does not exist", ErrValidation)
	ErrUnknownCategory    = fmt.Errorf("%w: category does not exist", ErrValidation)
	ErrMissingDestination = fmt.Errorf("%w: transfer requires a destination wallet", ErrValidation)
	ErrTransferToSelf     = fmt.Errorf("%w: transfer source and destination must differ", ErrValidation)
	ErrWalletInUse        = fmt.Errorf("%w: wallet is referenced by transactions", ErrValidation)
	ErrCategoryReadOnly   = fmt.Errorf("%w: default categories are read-only", ErrValidation)
	ErrDuplicateID        = fmt.Errorf("%w: id already exists", ErrValidation)
)

var (
	// ErrInvalidKey indicates the smart-entry backend rejected our credentials.
	ErrInvalidKey = fmt.Errorf("%w: invalid or missing API key", ErrAdapter)
	// ErrServiceUnavailable indicates the smart-entry backend could not be reached.
	ErrServiceUnavailable = fmt.Errorf("%w: service unavailable", ErrAdapter)
)
