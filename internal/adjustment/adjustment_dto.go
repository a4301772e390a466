package adjustment

type CreateAdjustmentRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Type        string `json:"type" binding:"required,oneof=ADD SUBTRACT"`
	DaysCount   int    `json:"days_count" binding:"required,gt=0"`
	Reason      string `json:"reason"`
}

type ApproveAdjustmentRequest struct {
	ApproverID string `json:"approver_id" binding:"omitempty,uuid"`
}

type AdjustmentResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Type        string  `json:"type"`
	DaysCount   int     `json:"days_count"`
	Reason      string  `json:"reason,omitempty"`
	Status      string  `json:"status"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
