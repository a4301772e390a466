package leavetype

type CreateLeaveTypeRequest struct {
	Code             string `json:"code" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Category         string `json:"category" binding:"omitempty,oneof=PAID UNPAID"`
	RequiresDocument bool   `json:"requires_document"`
}

type UpdateLeaveTypeRequest struct {
	Name             string `json:"name"`
	Category         string `json:"category" binding:"omitempty,oneof=PAID UNPAID"`
	RequiresDocument *bool  `json:"requires_document"`
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	RequiresDocument bool   `json:"requires_document"`
	CreatedAt        string `json:"created_at"`
}
