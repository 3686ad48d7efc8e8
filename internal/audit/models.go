package audit

import "time"

// EventCategory classifies audit events by their primary purpose, enabling
// different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: every
	// state change on the certificate registry. Long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity useful for debugging.
	// Can be sampled, shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Action identifies what happened.
type Action string

const (
	ActionCertificateIssued   Action = "certificate_issued"
	ActionCertificateRevoked  Action = "certificate_revoked"
	ActionCertificateVerified Action = "certificate_verified"
	ActionIssuanceRejected    Action = "issuance_rejected"
)

var actionCategories = map[Action]EventCategory{
	ActionCertificateIssued:   CategoryCompliance,
	ActionCertificateRevoked:  CategoryCompliance,
	ActionCertificateVerified: CategoryOperations,
	ActionIssuanceRejected:    CategoryOperations,
}

// CategoryOf returns the category for an action, defaulting to operations.
func CategoryOf(action Action) EventCategory {
	if c, ok := actionCategories[action]; ok {
		return c
	}
	return CategoryOperations
}

// Event is emitted from the coordinator to capture key actions. Kept
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID            string        `json:"id"`
	Category      EventCategory `json:"category"`
	Action        Action        `json:"action"`
	Timestamp     time.Time     `json:"timestamp"`
	Identifier    string        `json:"identifier,omitempty"`
	RecipientName string        `json:"recipientName,omitempty"`
	EventName     string        `json:"eventName,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	TxRef         string        `json:"txRef,omitempty"`
	RequestID     string        `json:"requestId,omitempty"`
}
