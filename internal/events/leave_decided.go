package events

import "time"

const LeaveDecisionTopic = "hr.leave.decision.v1"

const (
	EventTypeLeaveApproved = "leave.approved"
	EventTypeLeaveRejected = "leave.rejected"
)

// LeaveDecidedEvent is published through the outbox whenever a manager
// decision lands, so payroll/time integrations can react.
type LeaveDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	EmployeeID   string    `json:"employee_id"`
	LeaveTypeID  string    `json:"leave_type_id"`
	Status       string    `json:"status"`
	DurationDays int       `json:"duration_days"`
	DecidedBy    string    `json:"decided_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
