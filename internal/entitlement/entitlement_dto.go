package entitlement

type CreateEntitlementRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID     string `json:"leave_type_id" binding:"required,uuid"`
	Year            int    `json:"year" binding:"required,min=2000"`
	TotalDays       int    `json:"total_days" binding:"required,min=0"`
	CarriedOverDays int    `json:"carried_over_days" binding:"min=0"`
}

type UpdateEntitlementRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	TotalDays   *int   `json:"total_days" binding:"omitempty,min=0"`
	UsedDays    *int   `json:"used_days" binding:"omitempty,min=0"`
	PendingDays *int   `json:"pending_days" binding:"omitempty,min=0"`
}

type AccrueRequest struct {
	EmployeeID  string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Days        int    `json:"days" binding:"required,min=1"`
}

type EntitlementResponse struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	LeaveTypeID       string `json:"leave_type_id"`
	Year              int    `json:"year"`
	YearlyEntitlement int    `json:"yearly_entitlement"`
	CarryForward      int    `json:"carry_forward"`
	Taken             int    `json:"taken"`
	Pending           int    `json:"pending"`
	Remaining         int    `json:"remaining"`
}
