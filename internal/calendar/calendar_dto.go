package calendar

type CreateCalendarRequest struct {
	Year           int             `json:"year" binding:"required,gte=2000,lte=2200"`
	BlockedPeriods []BlockedPeriod `json:"blocked_periods" binding:"omitempty,dive"`
}

type UpdateCalendarRequest struct {
	BlockedPeriods []BlockedPeriod `json:"blocked_periods" binding:"required,dive"`
}

type AddBlockedPeriodRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type CalendarResponse struct {
	ID             string          `json:"id"`
	Year           int             `json:"year"`
	BlockedPeriods []BlockedPeriod `json:"blocked_periods"`
	CreatedAt      string          `json:"created_at"`
}
