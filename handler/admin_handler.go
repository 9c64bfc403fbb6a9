package handler

import (
	"strconv"

	"placedin/dto"
	"placedin/model"
	"placedin/repository"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func adminID(c *gin.Context) (string, bool) {
	id, exists := c.Get("admin_id")
	if !exists {
		utils.Forbidden(c, "Admin access required")
		return "", false
	}
	return id.(string), true
}

func ModerateExperienceHandler(c *gin.Context, expService *usecase.ExperienceService, action string) {
	id, ok := adminID(c)
	if !ok {
		return
	}

	var req dto.ModerateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request")
		return
	}

	err := expService.Moderate(id, c.Param("id"), action, req.Reason, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err.Error() == "experience not found" {
			utils.NotFound(c, "Experience not found")
			return
		}
		utils.InternalError(c, "Failed to moderate experience")
		return
	}

	utils.Success(c, gin.H{
		"message": "Moderation applied",
		"action":  action,
	})
}

func DeleteExperienceHandler(c *gin.Context, expService *usecase.ExperienceService) {
	id, ok := adminID(c)
	if !ok {
		return
	}

	var req dto.ModerateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request")
		return
	}

	err := expService.Delete(id, c.Param("id"), req.Reason, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err.Error() == "experience not found" {
			utils.NotFound(c, "Experience not found")
			return
		}
		utils.InternalError(c, "Failed to delete experience")
		return
	}

	utils.Success(c, gin.H{
		"message": "Experience deleted",
	})
}

func DeleteUserHandler(c *gin.Context, adminService *usecase.AdminService) {
	id, ok := adminID(c)
	if !ok {
		return
	}

	var req dto.ModerateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request")
		return
	}

	err := adminService.DeleteUser(id, c.Param("id"), req.Reason, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err.Error() == "user not found" {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalError(c, "Failed to delete user")
		return
	}

	utils.Success(c, gin.H{
		"message": "User deleted",
	})
}

func PendingExperiencesHandler(c *gin.Context, expService *usecase.ExperienceService) {
	if _, ok := adminID(c); !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	experiences, total, err := expService.PendingQueue(page, pageSize)
	if err != nil {
		utils.InternalError(c, "Failed to fetch pending experiences")
		return
	}

	utils.Success(c, gin.H{
		"experiences": experiences,
		"total":       total,
	})
}

func SetUserStatusHandler(c *gin.Context, adminService *usecase.AdminService, active bool) {
	id, ok := adminID(c)
	if !ok {
		return
	}

	var req dto.ModerateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request")
		return
	}

	err := adminService.SetUserStatus(id, c.Param("id"), active, req.Reason, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err.Error() == "user not found" {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalError(c, "Failed to update user status")
		return
	}

	utils.Success(c, gin.H{
		"message": "User status updated",
	})
}

func RecentActivityHandler(c *gin.Context, activityRepo *repository.AdminActivityRepo) {
	if _, ok := adminID(c); !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	var (
		entries []*model.AdminActivity
		err     error
	)
	switch {
	case c.Query("action") != "":
		entries, err = activityRepo.GetActivityByAction(c.Query("action"), limit)
	case c.Query("target_type") != "" && c.Query("target_id") != "":
		entries, err = activityRepo.GetActivityByTarget(c.Query("target_type"), c.Query("target_id"), limit)
	default:
		entries, err = activityRepo.GetRecentActivity(limit)
	}
	if err != nil {
		utils.BadRequest(c, "Invalid activity filter")
		return
	}

	utils.Success(c, gin.H{
		"activity": entries,
	})
}

func ActivityByAdminHandler(c *gin.Context, activityRepo *repository.AdminActivityRepo) {
	if _, ok := adminID(c); !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

	entries, err := activityRepo.GetActivityByAdmin(c.Param("id"), limit)
	if err != nil {
		utils.InternalError(c, "Failed to fetch admin activity")
		return
	}

	utils.Success(c, gin.H{
		"activity": entries,
	})
}
