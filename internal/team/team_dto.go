package team

import (
	"go-leave/internal/entitlement"
	"go-leave/internal/leaverequest"
)

type MemberSummary struct {
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
}

// TeamLeaveSummary is one direct report's balances plus their approved leave
// that has not finished yet.
type TeamLeaveSummary struct {
	Employee         MemberSummary                       `json:"employee"`
	Entitlements     []entitlement.EntitlementResponse   `json:"entitlements"`
	UpcomingRequests []leaverequest.LeaveRequestResponse `json:"upcoming_requests"`
}
