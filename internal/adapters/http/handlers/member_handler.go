package handlers

import (
	"motorvault/internal/adapters/http/middleware"
	"motorvault/internal/core/domain"
	"motorvault/internal/core/services"
	"motorvault/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member lookup, subscription and entitlement endpoints
type MemberHandler struct {
	memberService *services.MemberService
	directory     *services.DirectoryService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, directory *services.DirectoryService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		directory:     directory,
	}
}

// Lookup resolves a member number to an identity snapshot
// @Summary Lookup member
// @Description Resolve a member number to a contact snapshot for a transfer
// @Tags Members
// @Produce json
// @Param member_number path string true "Member number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /users/lookup/{member_number} [get]
func (h *MemberHandler) Lookup(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	identity, err := h.directory.Lookup(c.UserContext(), callerID, c.Params("member_number"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Member found", identity)
}

// UpgradeSubscriptionInput represents an upgrade request
type UpgradeSubscriptionInput struct {
	SubscriptionTier string `json:"subscription_tier"`
}

// UpgradeSubscription moves the caller to a new subscription tier
// @Summary Upgrade subscription
// @Description Change the caller's subscription tier after billing confirms
// @Tags Members
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /user/upgrade-subscription [post]
func (h *MemberHandler) UpgradeSubscription(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	var input UpgradeSubscriptionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.SubscriptionTier == "" {
		return response.BadRequest(c, "subscription_tier is required")
	}

	member, err := h.memberService.UpgradeSubscription(c.UserContext(), callerID, domain.SubscriptionTier(input.SubscriptionTier))
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Subscription upgraded", member)
}

// Entitlements returns the caller's resolved entitlement
// @Summary Get entitlements
// @Description Resolve the caller's tier to its transfer capabilities
// @Tags Members
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /user/entitlements [get]
func (h *MemberHandler) Entitlements(c *fiber.Ctx) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Member not authenticated")
	}

	entitlement, err := h.memberService.GetEntitlements(c.UserContext(), callerID)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Entitlements resolved", entitlement)
}
