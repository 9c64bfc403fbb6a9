package handler

import (
	"placedin/dto"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func ChangePasswordHandler(c *gin.Context, userService *usecase.UserService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "New password must be at least 6 characters with a number and a special character")
		return
	}

	if err := userService.ChangePassword(userID.(string), req.CurrentPassword, req.NewPassword); err != nil {
		if err.Error() == "current password is incorrect" {
			utils.Unauthorized(c, "Current password is incorrect")
			return
		}
		utils.InternalError(c, "Failed to change password")
		return
	}

	utils.Success(c, gin.H{
		"message": "Password changed successfully",
	})
}
