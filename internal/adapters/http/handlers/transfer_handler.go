package handlers

import (
	"motorvault/internal/adapters/http/middleware"
	"motorvault/internal/core/services"
	"motorvault/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler handles the transfer lifecycle endpoints
type TransferHandler struct {
	transferService *services.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *services.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// Initiate opens a transfer request for one of the caller's vehicles
// @Summary Initiate transfer
// @Description Start transferring a vehicle to another member
// @Tags Transfers
// @Accept json
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /transfers/initiate [post]
func (h *TransferHandler) Initiate(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	var input services.InitiateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.VehicleID == "" || input.NewOwnerMemberNumber == "" {
		return response.BadRequest(c, "vehicle_id and new_owner_member_number are required")
	}

	transfer, err := h.transferService.Initiate(c.UserContext(), callerID, &input)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Created(c, "Transfer initiated", transfer)
}

// ListPending lists the caller's outgoing pending requests
// @Summary List pending transfers
// @Tags Transfers
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /transfers/pending [get]
func (h *TransferHandler) ListPending(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	transfers, err := h.transferService.ListPendingByOwner(c.UserContext(), callerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load pending transfers")
	}
	return response.Success(c, "Pending transfers retrieved", fiber.Map{"transfers": transfers})
}

// ListIncoming lists pending requests addressed to the caller
// @Summary List incoming transfers
// @Tags Transfers
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /transfers/incoming [get]
func (h *TransferHandler) ListIncoming(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	transfers, err := h.transferService.ListIncoming(c.UserContext(), callerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load incoming transfers")
	}
	return response.Success(c, "Incoming transfers retrieved", fiber.Map{"transfers": transfers})
}

// ListQuarantined lists the caller's quarantined vehicles
// @Summary List quarantined vehicles
// @Tags Transfers
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /transfers/quarantined [get]
func (h *TransferHandler) ListQuarantined(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	vehicles, err := h.transferService.ListQuarantined(c.UserContext(), callerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load quarantined vehicles")
	}
	return response.Success(c, "Quarantined vehicles retrieved", fiber.Map{"vehicles": vehicles})
}

// Accept completes a transfer addressed to the caller
// @Summary Accept transfer
// @Tags Transfers
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /transfers/{id}/accept [post]
func (h *TransferHandler) Accept(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	transfer, err := h.transferService.Accept(c.UserContext(), callerID, c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transfer accepted", transfer)
}

// Reject declines a transfer. The target declining quarantines the vehicle;
// an owner hitting the same endpoint withdraws their own request instead.
// @Summary Reject transfer
// @Tags Transfers
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	transfer, err := h.transferService.Reject(c.UserContext(), callerID, c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transfer resolved", transfer)
}

// Cancel withdraws a pending request the caller initiated
// @Summary Cancel transfer
// @Tags Transfers
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	transfer, err := h.transferService.Cancel(c.UserContext(), callerID, c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transfer cancelled", transfer)
}
