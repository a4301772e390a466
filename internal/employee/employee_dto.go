package employee

type CreateEmployeeRequest struct {
	FirstName            string `json:"first_name" binding:"required"`
	LastName             string `json:"last_name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	PrimaryPositionID    string `json:"primary_position_id" binding:"omitempty,uuid"`
	SupervisorPositionID string `json:"supervisor_position_id" binding:"omitempty,uuid"`
	HireDate             string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	PrimaryPositionID    string `json:"primary_position_id" binding:"omitempty,uuid"`
	SupervisorPositionID string `json:"supervisor_position_id" binding:"omitempty,uuid"`
	Status               string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID                   string  `json:"id"`
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	Email                string  `json:"email"`
	PrimaryPositionID    *string `json:"primary_position_id,omitempty"`
	SupervisorPositionID *string `json:"supervisor_position_id,omitempty"`
	Status               string  `json:"status"`
	HireDate             *string `json:"hire_date,omitempty"`
	CreatedAt            string  `json:"created_at"`
}
