package leavepolicy

type CreateLeavePolicyRequest struct {
	LeaveTypeID         string `json:"leave_type_id" binding:"required,uuid"`
	Year                int    `json:"year" binding:"required,gte=2000,lte=2200"`
	MaxCarryForwardDays int    `json:"max_carry_forward_days" binding:"gte=0"`
	CarryForwardExpiry  string `json:"carry_forward_expiry" binding:"required"`
}

type UpdateLeavePolicyRequest struct {
	MaxCarryForwardDays *int   `json:"max_carry_forward_days" binding:"omitempty,gte=0"`
	CarryForwardExpiry  string `json:"carry_forward_expiry"`
}

type LeavePolicyResponse struct {
	ID                  string  `json:"id"`
	LeaveTypeID         string  `json:"leave_type_id"`
	Year                int     `json:"year"`
	MaxCarryForwardDays int     `json:"max_carry_forward_days"`
	CarryForwardExpiry  string  `json:"carry_forward_expiry"`
	ExpiredAt           *string `json:"expired_at,omitempty"`
	CreatedAt           string  `json:"created_at"`
}
