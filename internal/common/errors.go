// Package common contains shared constants, sentinel errors and input
// helpers used across engdir components. Callers should use errors.Is to
// match the sentinel values.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorUnauthorized = errors.New("unauthorized")

	// account lifecycle errors
	ErrorAlreadyExists   = errors.New("already exists")
	ErrorPendingApproval = errors.New("pending approval")
	ErrorValidation      = errors.New("validation error")

	// ErrorPromoteIncomplete means an account was appended to the active
	// table but the pending queue rewrite failed, so the record exists in
	// both stores until reconciled manually.
	ErrorPromoteIncomplete = errors.New("promote incomplete")
)
