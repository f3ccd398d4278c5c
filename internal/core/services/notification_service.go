package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// NotificationService pushes lifecycle events to the external notification
// sink over a webhook. Delivery is best-effort: a command never fails or
// blocks because a notice could not be sent.
type NotificationService struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// NewNotificationService creates a new notification service. An empty
// webhook URL disables delivery entirely.
func NewNotificationService(webhookURL string) *NotificationService {
	return &NotificationService{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// sendEvent posts a lifecycle event to the webhook
func (s *NotificationService) sendEvent(event string, payload map[string]interface{}) {
	if !s.enabled {
		return
	}

	body := map[string]interface{}{
		"event":   event,
		"sent_at": time.Now().UTC().Format(time.RFC3339),
		"payload": payload,
	}

	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("❌ Notify marshal error: %v", err)
		return
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Printf("❌ Notify send error [%s]: %v", event, err)
		return
	}
	defer resp.Body.Close()
}

// NotifyTransferInitiated notifies both parties that a transfer was opened
func (s *NotificationService) NotifyTransferInitiated(transferID, vehicleID, toMemberNumber string) {
	s.sendEvent("transfer_initiated", map[string]interface{}{
		"transfer_id":      transferID,
		"vehicle_id":       vehicleID,
		"to_member_number": toMemberNumber,
	})
}

// NotifyTransferResolved notifies the outcome of a transfer request
func (s *NotificationService) NotifyTransferResolved(transferID, vehicleID, outcome string) {
	s.sendEvent(fmt.Sprintf("transfer_%s", outcome), map[string]interface{}{
		"transfer_id": transferID,
		"vehicle_id":  vehicleID,
	})
}

// NotifyVehicleQuarantined notifies the owner that a quarantine countdown started
func (s *NotificationService) NotifyVehicleQuarantined(vehicleID string, endsAt time.Time) {
	s.sendEvent("vehicle_quarantined", map[string]interface{}{
		"vehicle_id":         vehicleID,
		"quarantine_ends_at": endsAt.UTC().Format(time.RFC3339),
	})
}

// NotifyVehicleDeleted notifies dependent subsystems (insurance, finance,
// roadside, service bookings) that a vehicle reached its terminal state.
// Those records are owned elsewhere and must be cleaned up by their owners.
func (s *NotificationService) NotifyVehicleDeleted(vehicleID, ownerID string) {
	s.sendEvent("vehicle_deleted", map[string]interface{}{
		"vehicle_id": vehicleID,
		"owner_id":   ownerID,
	})
}
