package dto

type RegistrationRequest struct {
	Username       string `json:"username" binding:"required,min=4,max=20"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,password"`
	GraduationYear int    `json:"graduation_year" binding:"omitempty,gradyear"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,password"`
}

type UserResponse struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	GraduationYear int    `json:"graduation_year,omitempty"`
}
