package events

import "time"

const ApprovalLifecycleTopic = "hr.approval.lifecycle.v1"

const (
	ApprovalRequestSubmitted = "approval.request.submitted"
	ApprovalRequestCompleted = "approval.request.completed"
	ApprovalRequestEscalated = "approval.request.escalated"
)

type ApprovalRequestEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	CompanyID   string    `json:"company_id"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	RequestorID string    `json:"requestor_id"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
