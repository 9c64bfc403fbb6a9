package dto

type SubmitRatingRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Label  string `json:"label" binding:"required,max=100"`
}
