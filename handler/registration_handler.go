package handler

import (
	"placedin/dto"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegistrationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("auth", "invalid_registration")
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := userService.Register(c.Request.Context(), &req)
	if err != nil {
		if err.Error() == "username already taken" {
			utils.Conflict(c, "Username already taken")
			return
		}
		utils.TrackError("auth", "registration_failed")
		utils.InternalError(c, "Failed to register user")
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"user": dto.UserResponse{
			UserID:         user.UserID,
			Username:       user.Username,
			Email:          user.Email,
			Role:           user.Role,
			GraduationYear: user.GraduationYear,
		},
	})
}
