package handler

import (
	"errors"

	"placedin/dto"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func SubmitExperienceHandler(c *gin.Context, expService *usecase.ExperienceService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req dto.SubmitExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation", "invalid_experience_request")
		utils.BadRequest(c, "Invalid request")
		return
	}

	exp, err := expService.SubmitExperience(userID.(string), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			utils.TrackError("validation", "invalid_experience_request")
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to submit experience")
		return
	}

	utils.Created(c, gin.H{
		"message":    "Experience submitted for review",
		"experience": exp,
	})
}

func BrowseExperiencesHandler(c *gin.Context, expService *usecase.ExperienceService) {
	var q dto.ExperienceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}

	experiences, total, err := expService.BrowseApproved(q)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "Failed to fetch experiences")
		return
	}

	utils.Success(c, gin.H{
		"experiences": experiences,
		"total":       total,
		"page":        q.Page,
	})
}

func GetExperienceHandler(c *gin.Context, expService *usecase.ExperienceService) {
	exp, err := expService.GetExperience(c.Param("id"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch experience")
		return
	}
	if exp == nil {
		utils.NotFound(c, "Experience not found")
		return
	}

	utils.Success(c, gin.H{
		"experience": exp,
	})
}
