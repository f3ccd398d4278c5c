package services

import (
	"context"
	"log"
	"time"

	"motorvault/internal/adapters/persistence/models"
	"motorvault/internal/adapters/persistence/repositories"
	"motorvault/internal/config"
	"motorvault/internal/core/domain"
	"motorvault/internal/pkg/clock"

	"github.com/google/uuid"
)

// TransferService coordinates the vehicle ownership transfer lifecycle.
// It is the sole writer of transfer requests and of transfer-driven vehicle
// status transitions; every transition goes through a conditional update so
// concurrent calls against the same vehicle serialize.
type TransferService struct {
	memberRepo   repositories.MemberRepository
	vehicleRepo  repositories.VehicleRepository
	transferRepo repositories.TransferRepository
	auditRepo    repositories.AuditRepository
	directory    *DirectoryService
	entitlements *EntitlementService
	notify       *NotificationService
	clock        clock.Clock
	policy       config.TransferConfig
}

// NewTransferService creates a new transfer service
func NewTransferService(
	memberRepo repositories.MemberRepository,
	vehicleRepo repositories.VehicleRepository,
	transferRepo repositories.TransferRepository,
	auditRepo repositories.AuditRepository,
	directory *DirectoryService,
	entitlements *EntitlementService,
	notify *NotificationService,
	clk clock.Clock,
	policy config.TransferConfig,
) *TransferService {
	return &TransferService{
		memberRepo:   memberRepo,
		vehicleRepo:  vehicleRepo,
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
		directory:    directory,
		entitlements: entitlements,
		notify:       notify,
		clock:        clk,
		policy:       policy,
	}
}

// InitiateInput represents a transfer initiation request
type InitiateInput struct {
	VehicleID            string `json:"vehicle_id"`
	NewOwnerMemberNumber string `json:"new_owner_member_number"`
	NewOwnerName         string `json:"new_owner_name"`
	NewOwnerMobile       string `json:"new_owner_mobile"`
	NewOwnerEmail        string `json:"new_owner_email"`
}

// Initiate opens a transfer request for a vehicle. Preconditions are checked
// in order: ownership, vehicle state (Active, or Quarantined with time left
// on the countdown for the rescue path), the caller's tier, then the target
// member lookup. Only after all pass does the vehicle move to
// PENDING_TRANSFER.
func (s *TransferService) Initiate(ctx context.Context, callerID string, input *InitiateInput) (*models.TransferRequest, error) {
	if input.VehicleID == "" || input.NewOwnerMemberNumber == "" {
		return nil, domain.ErrValidation
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}
	if vehicle.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	now := s.clock.Now()
	switch vehicle.Status {
	case domain.VehicleActive:
		// normal path
	case domain.VehicleQuarantined:
		// rescue path: only while the countdown is still running
		if vehicle.QuarantineEndsAt == nil || !vehicle.QuarantineEndsAt.After(now) {
			return nil, domain.ErrVehicleGone
		}
	case domain.VehiclePendingTransfer:
		return nil, domain.ErrTransferPending
	case domain.VehicleDeleted:
		return nil, domain.ErrVehicleGone
	default:
		return nil, domain.ErrConflict
	}

	caller, err := s.memberRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	entitlement := s.entitlements.Resolve(domain.SubscriptionTier(caller.SubscriptionTier))
	if !entitlement.TransferEnabled {
		return nil, domain.ErrEntitlementDenied
	}

	// Resolve the target before any state mutation; the snapshot returned
	// here is frozen into the request.
	identity, err := s.directory.Lookup(ctx, callerID, input.NewOwnerMemberNumber)
	if err != nil {
		return nil, err
	}

	// Move the vehicle first: the conditional update is what guarantees at
	// most one pending request per vehicle under concurrent initiation.
	priorStatus := vehicle.Status
	rows, err := s.vehicleRepo.UpdateStatusIf(ctx, vehicle.ID, priorStatus, map[string]interface{}{
		"status":             domain.VehiclePendingTransfer,
		"quarantine_ends_at": nil,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrTransferPending
	}

	transfer := &models.TransferRequest{
		ID:             uuid.NewString(),
		VehicleID:      vehicle.ID,
		FromOwnerID:    callerID,
		ToMemberID:     identity.MemberID,
		ToMemberNumber: identity.MemberNumber,
		ToName:         identity.FullName,
		ToMobile:       identity.Mobile,
		ToEmail:        identity.Email,
		Status:         domain.TransferPending,
		CreatedAt:      now,
	}
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		// Put the vehicle back so it is not stranded in PENDING_TRANSFER
		// with no request attached.
		revert := map[string]interface{}{
			"status":             priorStatus,
			"quarantine_ends_at": vehicle.QuarantineEndsAt,
		}
		if _, revertErr := s.vehicleRepo.UpdateStatusIf(ctx, vehicle.ID, domain.VehiclePendingTransfer, revert); revertErr != nil {
			log.Printf("❌ Failed to revert vehicle %s after initiate error: %v", vehicle.ID, revertErr)
		}
		return nil, err
	}

	s.recordAudit(ctx, "transfer_initiated", vehicle.ID, callerID, "transfer "+transfer.ID+" to member "+identity.MemberNumber)
	s.notify.NotifyTransferInitiated(transfer.ID, vehicle.ID, identity.MemberNumber)

	log.Printf("✅ Transfer %s initiated: vehicle %s → member %s", transfer.ID, vehicle.ID, identity.MemberNumber)
	return transfer, nil
}

// Cancel withdraws a pending request. Only the original owner may cancel;
// the vehicle returns to ACTIVE with no residual quarantine.
func (s *TransferService) Cancel(ctx context.Context, callerID, transferID string) (*models.TransferRequest, error) {
	transfer, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, domain.ErrTransferNotFound
	}
	if transfer.FromOwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	if transfer.Status != domain.TransferPending {
		return nil, domain.ErrInvalidState
	}

	now := s.clock.Now()
	rows, err := s.transferRepo.ResolveIfPending(ctx, transferID, map[string]interface{}{
		"status":      domain.TransferCancelled,
		"resolved_at": now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrInvalidState
	}

	if err := s.returnVehicleToActive(ctx, transfer.VehicleID); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "transfer_cancelled", transfer.VehicleID, callerID, "transfer "+transferID+" cancelled by owner")
	s.notify.NotifyTransferResolved(transferID, transfer.VehicleID, "cancelled")

	log.Printf("✅ Transfer %s cancelled, vehicle %s back to active", transferID, transfer.VehicleID)
	return s.transferRepo.GetByID(ctx, transferID)
}

// Accept completes a transfer: the target member takes ownership and the
// vehicle returns to ACTIVE. The target's ceiling is re-checked against
// their current entitlement; on a full garage the request stays PENDING so
// the owner can still cancel or the target reject.
func (s *TransferService) Accept(ctx context.Context, callerID, transferID string) (*models.TransferRequest, error) {
	transfer, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, domain.ErrTransferNotFound
	}
	if transfer.ToMemberID != callerID {
		return nil, domain.ErrForbidden
	}
	if transfer.Status != domain.TransferPending {
		return nil, domain.ErrInvalidState
	}

	target, err := s.memberRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	entitlement := s.entitlements.Resolve(domain.SubscriptionTier(target.SubscriptionTier))

	counted := []string{domain.VehicleActive, domain.VehiclePendingTransfer}
	if s.policy.QuarantineCountsTowardLimit {
		counted = append(counted, domain.VehicleQuarantined)
	}
	owned, err := s.vehicleRepo.CountOwnedByStatuses(ctx, callerID, counted)
	if err != nil {
		return nil, err
	}
	if owned >= int64(entitlement.MaxVehicles) {
		return nil, domain.ErrVehicleLimit
	}

	now := s.clock.Now()
	rows, err := s.transferRepo.ResolveIfPending(ctx, transferID, map[string]interface{}{
		"status":      domain.TransferAccepted,
		"resolved_at": now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrInvalidState
	}

	rows, err = s.vehicleRepo.UpdateStatusIf(ctx, transfer.VehicleID, domain.VehiclePendingTransfer, map[string]interface{}{
		"status":             domain.VehicleActive,
		"owner_id":           callerID,
		"quarantine_ends_at": nil,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		log.Printf("❌ Vehicle %s was not pending while accepting transfer %s", transfer.VehicleID, transferID)
		return nil, domain.ErrConflict
	}

	s.recordAudit(ctx, "transfer_accepted", transfer.VehicleID, callerID, "transfer "+transferID+" accepted, owner changed")
	s.notify.NotifyTransferResolved(transferID, transfer.VehicleID, "accepted")

	log.Printf("✅ Transfer %s accepted, vehicle %s now owned by %s", transferID, transfer.VehicleID, callerID)
	return s.transferRepo.GetByID(ctx, transferID)
}

// Reject declines a pending request. The target member declining sends the
// vehicle into quarantine; the original owner calling the same operation is
// routed through cancel semantics (the client exposes one button for both).
func (s *TransferService) Reject(ctx context.Context, callerID, transferID string) (*models.TransferRequest, error) {
	transfer, err := s.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, domain.ErrTransferNotFound
	}
	if transfer.FromOwnerID == callerID {
		return s.Cancel(ctx, callerID, transferID)
	}
	if transfer.ToMemberID != callerID {
		return nil, domain.ErrForbidden
	}
	if transfer.Status != domain.TransferPending {
		return nil, domain.ErrInvalidState
	}

	now := s.clock.Now()
	endsAt := now.Add(s.policy.GracePeriod)
	if err := s.resolveToQuarantine(ctx, transfer, domain.TransferRejected, now, endsAt, callerID); err != nil {
		return nil, err
	}

	log.Printf("✅ Transfer %s rejected, vehicle %s quarantined until %s", transferID, transfer.VehicleID, endsAt.Format(time.RFC3339))
	return s.transferRepo.GetByID(ctx, transferID)
}

// ExpireRequest resolves a pending request that outlived the response
// window. The quarantine countdown starts from the moment the window
// lapsed, not from when the sweep happened to run.
func (s *TransferService) ExpireRequest(ctx context.Context, transfer *models.TransferRequest) error {
	now := s.clock.Now()
	endsAt := transfer.CreatedAt.Add(s.policy.ResponseWindow).Add(s.policy.GracePeriod)
	if !endsAt.After(now) {
		// A sweep delayed past the grace period must still leave the owner a
		// running countdown, so restart it from now instead of quarantining
		// with a date already in the past.
		endsAt = now.Add(s.policy.GracePeriod)
	}
	if err := s.resolveToQuarantine(ctx, transfer, domain.TransferExpired, now, endsAt, ""); err != nil {
		return err
	}

	log.Printf("⏰ Transfer %s expired, vehicle %s quarantined until %s", transfer.ID, transfer.VehicleID, endsAt.Format(time.RFC3339))
	return nil
}

// resolveToQuarantine moves a pending request to a terminal declined state
// and starts the vehicle's quarantine countdown.
func (s *TransferService) resolveToQuarantine(ctx context.Context, transfer *models.TransferRequest, terminalStatus string, now, endsAt time.Time, actorID string) error {
	rows, err := s.transferRepo.ResolveIfPending(ctx, transfer.ID, map[string]interface{}{
		"status":      terminalStatus,
		"resolved_at": now,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidState
	}

	rows, err = s.vehicleRepo.UpdateStatusIf(ctx, transfer.VehicleID, domain.VehiclePendingTransfer, map[string]interface{}{
		"status":             domain.VehicleQuarantined,
		"quarantine_ends_at": endsAt,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		log.Printf("❌ Vehicle %s was not pending while resolving transfer %s", transfer.VehicleID, transfer.ID)
		return domain.ErrConflict
	}

	event := "transfer_rejected"
	if terminalStatus == domain.TransferExpired {
		event = "transfer_expired"
	}
	s.recordAudit(ctx, event, transfer.VehicleID, actorID, "transfer "+transfer.ID+" resolved to "+terminalStatus)
	s.notify.NotifyTransferResolved(transfer.ID, transfer.VehicleID, map[string]string{
		domain.TransferRejected: "rejected",
		domain.TransferExpired:  "expired",
	}[terminalStatus])
	s.notify.NotifyVehicleQuarantined(transfer.VehicleID, endsAt)
	return nil
}

// returnVehicleToActive restores a pending vehicle to ACTIVE with no
// residual quarantine countdown.
func (s *TransferService) returnVehicleToActive(ctx context.Context, vehicleID string) error {
	rows, err := s.vehicleRepo.UpdateStatusIf(ctx, vehicleID, domain.VehiclePendingTransfer, map[string]interface{}{
		"status":             domain.VehicleActive,
		"quarantine_ends_at": nil,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		log.Printf("❌ Vehicle %s was not pending while cancelling its transfer", vehicleID)
		return domain.ErrConflict
	}
	return nil
}

// recordAudit writes a lifecycle audit row. Coordinator events are
// best-effort; only the deletion path requires the write to gate the action.
func (s *TransferService) recordAudit(ctx context.Context, event, vehicleID, actorID, detail string) {
	err := s.auditRepo.Record(ctx, &models.AuditEvent{
		ID:        uuid.NewString(),
		Event:     event,
		VehicleID: vehicleID,
		ActorID:   actorID,
		Detail:    detail,
	})
	if err != nil {
		log.Printf("❌ Audit write failed [%s, vehicle %s]: %v", event, vehicleID, err)
	}
}

// ============================================================
// Read models: each list is independently fetchable and cheap, so the
// client can poll on focus without coupling one panel's failure to another.
// ============================================================

// PendingTransferItem is one row of the outgoing/incoming pending lists
type PendingTransferItem struct {
	ID                   string          `json:"id"`
	Vehicle              *VehicleSummary `json:"vehicle,omitempty"`
	NewOwnerName         string          `json:"new_owner_name"`
	NewOwnerMemberNumber string          `json:"new_owner_member_number"`
	CreatedAt            time.Time       `json:"created_at"`
}

// VehicleSummary is the vehicle shape embedded in transfer lists
type VehicleSummary struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Rego  string `json:"rego"`
}

// QuarantinedVehicleItem is one row of the quarantined vehicles list
type QuarantinedVehicleItem struct {
	ID                string `json:"id"`
	Year              int    `json:"year"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	Rego              string `json:"rego"`
	QuarantineEndDate string `json:"quarantine_end_date"`
}

// ListPendingByOwner lists the caller's outgoing pending requests
func (s *TransferService) ListPendingByOwner(ctx context.Context, ownerID string) ([]PendingTransferItem, error) {
	transfers, err := s.transferRepo.ListPendingByFromOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toPendingItems(transfers), nil
}

// ListIncoming lists pending requests addressed to the caller
func (s *TransferService) ListIncoming(ctx context.Context, memberID string) ([]PendingTransferItem, error) {
	transfers, err := s.transferRepo.ListPendingByToMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return toPendingItems(transfers), nil
}

// ListQuarantined lists the caller's quarantined vehicles with the date
// their countdown ends, exchanged as an ISO-8601 calendar date.
func (s *TransferService) ListQuarantined(ctx context.Context, ownerID string) ([]QuarantinedVehicleItem, error) {
	vehicles, err := s.vehicleRepo.ListByOwnerAndStatus(ctx, ownerID, domain.VehicleQuarantined)
	if err != nil {
		return nil, err
	}

	items := make([]QuarantinedVehicleItem, 0, len(vehicles))
	for _, vehicle := range vehicles {
		item := QuarantinedVehicleItem{
			ID:    vehicle.ID,
			Year:  vehicle.Year,
			Make:  vehicle.Make,
			Model: vehicle.Model,
			Rego:  vehicle.Rego,
		}
		if vehicle.QuarantineEndsAt != nil {
			item.QuarantineEndDate = vehicle.QuarantineEndsAt.UTC().Format("2006-01-02")
		}
		items = append(items, item)
	}
	return items, nil
}

func toPendingItems(transfers []models.TransferRequest) []PendingTransferItem {
	items := make([]PendingTransferItem, 0, len(transfers))
	for _, transfer := range transfers {
		item := PendingTransferItem{
			ID:                   transfer.ID,
			NewOwnerName:         transfer.ToName,
			NewOwnerMemberNumber: transfer.ToMemberNumber,
			CreatedAt:            transfer.CreatedAt,
		}
		if transfer.Vehicle != nil {
			item.Vehicle = &VehicleSummary{
				ID:    transfer.Vehicle.ID,
				Year:  transfer.Vehicle.Year,
				Make:  transfer.Vehicle.Make,
				Model: transfer.Vehicle.Model,
				Rego:  transfer.Vehicle.Rego,
			}
		}
		items = append(items, item)
	}
	return items
}
