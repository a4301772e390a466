package position

type CreatePositionRequest struct {
	Code  string `json:"code" binding:"required"`
	Title string `json:"title" binding:"required"`
}

type UpdatePositionRequest struct {
	Title string `json:"title" binding:"required"`
}

type PositionResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
