package leaverequest

type CreateLeaveRequestRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Justification string `json:"justification"`
	AttachmentID  string `json:"attachment_id" binding:"omitempty,uuid"`
}

type UpdateLeaveRequestRequest struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Justification string `json:"justification"`
	AttachmentID  string `json:"attachment_id" binding:"omitempty,uuid"`
}

type DecisionRequest struct {
	ApproverID string `json:"approver_id" binding:"omitempty,uuid"`
	Comment    string `json:"comment"`
}

type BulkDecisionItem struct {
	ID       string `json:"id" binding:"required,uuid"`
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Reason   string `json:"reason"`
}

type BulkLeaveRequestRequest struct {
	ApproverID string             `json:"approver_id" binding:"omitempty,uuid"`
	Requests   []BulkDecisionItem `json:"requests" binding:"required,min=1,dive"`
}

type BulkFailure struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkResult is the best-effort outcome of bulk processing: every item is
// attempted, failures are collected instead of aborting the batch.
type BulkResult struct {
	Succeeded []LeaveRequestResponse `json:"succeeded"`
	Failed    []BulkFailure          `json:"failed"`
}

type FilterLeaveRequestsRequest struct {
	EmployeeID  string `form:"employee_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	LeaveTypeID string `form:"leave_type_id" binding:"omitempty,uuid"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
}

type LeaveRequestResponse struct {
	ID            string           `json:"id"`
	RequestNumber string           `json:"request_number"`
	EmployeeID    string           `json:"employee_id"`
	LeaveTypeID   string           `json:"leave_type_id"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	DurationDays  int              `json:"duration_days"`
	Justification string           `json:"justification,omitempty"`
	AttachmentID  *string          `json:"attachment_id,omitempty"`
	Status        string           `json:"status"`
	ApprovalFlow  []DecisionRecord `json:"approval_flow"`
	CreatedAt     string           `json:"created_at"`
}
