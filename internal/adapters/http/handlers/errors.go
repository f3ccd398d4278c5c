package handlers

import (
	"errors"

	"motorvault/internal/core/domain"
	"motorvault/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleDomainError maps domain sentinel errors to HTTP responses. The
// detail string is surfaced verbatim; the client renders it in a
// dismissible notice.
func handleDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTarget),
		errors.Is(err, domain.ErrUnknownTier):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrEntitlementDenied),
		errors.Is(err, domain.ErrVehicleLimit):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrVehicleNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrTransferPending),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrConflict):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrVehicleGone):
		return response.Gone(c, err.Error())
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}
