package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const EventTypeEmployeeCreated = "employee.created"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
