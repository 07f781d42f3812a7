package domain

import "time"

// Event subjects published on the message bus after successful intake.
const (
	SubjectLeadCreated    = "intake.lead.created"
	SubjectRequestCreated = "intake.request.created"
)

// IntakeEvent is the payload of every intake subject.
type IntakeEvent struct {
	Type       string      `json:"type"`
	Kind       RequestKind `json:"kind,omitempty"`
	RecordID   string      `json:"record_id"`
	OrderID    string      `json:"order_id,omitempty"`
	Name       string      `json:"name"`
	Email      string      `json:"email,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	Plan       string      `json:"plan,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
