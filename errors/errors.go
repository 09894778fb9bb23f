// Package errors defines all exported error sentinels for the chmgen library.
//
// This is the single source of truth for error values. Both the top-level
// chmgen package and the command-line tool import from here, ensuring
// errors.Is checks work across package boundaries.
package errors

import "errors"

// Key-set errors
var (
	ErrEmptyKeys    = errors.New("chmgen: cannot generate a hash function for zero keys")
	ErrEmptyKey     = errors.New("chmgen: empty key")
	ErrDuplicateKey = errors.New("chmgen: duplicate key detected")
	ErrTooManyKeys  = errors.New("chmgen: key count exceeds maximum (2^24)")
	ErrKeyTooLong   = errors.New("chmgen: key exceeds maximum length (65535 bytes)")
)

// Configuration errors
var (
	ErrInvalidTrials   = errors.New("chmgen: trials per table size must be larger than zero")
	ErrInvalidWorkers  = errors.New("chmgen: worker count must be larger than zero")
	ErrInvalidHashKind = errors.New("chmgen: unknown hash kind")
)

// Search errors
var (
	ErrSearchExhausted = errors.New("chmgen: too many iterations")
)

// Emission errors
var (
	ErrUnknownPlaceholder = errors.New("chmgen: template references unknown placeholder")
	ErrBadTemplate        = errors.New("chmgen: malformed template")
)

// Verification errors
var (
	ErrVerificationFailed = errors.New("chmgen: generated function failed verification")
	ErrExecFailed         = errors.New("chmgen: generated code failed to run")
)

// Input file errors
var (
	ErrNoKeys           = errors.New("chmgen: no keys found in input")
	ErrKeyColumnMissing = errors.New("chmgen: requested key column is missing")
)
