package domain

import "errors"

// Common domain errors
var (
	ErrValidation     = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternalServer = errors.New("internal server error")
)

// Member errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidTarget  = errors.New("cannot transfer a vehicle to yourself")
	ErrUnknownTier    = errors.New("unknown subscription tier")
)

// Transfer errors
var (
	ErrTransferNotFound  = errors.New("transfer request not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrVehicleGone       = errors.New("vehicle has been deleted")
	ErrTransferPending   = errors.New("vehicle already has a pending transfer")
	ErrEntitlementDenied = errors.New("subscription tier does not allow this operation")
	ErrVehicleLimit      = errors.New("vehicle limit reached for subscription tier")
	ErrInvalidState      = errors.New("transfer request is not pending")
)
