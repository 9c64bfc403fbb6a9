package handler

import (
	"errors"

	"placedin/dto"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func SubmitRatingHandler(c *gin.Context, ratingService *usecase.RatingService) {
	var req dto.SubmitRatingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation", "invalid_rating_request")
		utils.BadRequest(c, "Rating must be between 1 and 5 with a label")
		return
	}

	rating, err := ratingService.SubmitRating(req.Rating, req.Label, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			utils.TrackError("validation", "invalid_rating_request")
			utils.BadRequest(c, "Rating must be between 1 and 5 with a label")
			return
		}
		utils.TrackError("database", "rating_submit_failed")
		utils.InternalError(c, "Failed to submit rating")
		return
	}

	utils.Created(c, gin.H{
		"message": "Rating submitted",
		"rating":  rating,
	})
}

func GetAllRatingsHandler(c *gin.Context, ratingService *usecase.RatingService) {
	ratings, err := ratingService.GetAllRatings()
	if err != nil {
		utils.InternalError(c, "Failed to fetch ratings")
		return
	}

	utils.Success(c, gin.H{
		"ratings": ratings,
	})
}

func GetRatingStatsHandler(c *gin.Context, ratingService *usecase.RatingService) {
	stats, err := ratingService.GetStats()
	if err != nil {
		utils.InternalError(c, "Failed to compute rating stats")
		return
	}

	utils.Success(c, gin.H{
		"stats":         stats.Histogram,
		"totalRatings":  stats.TotalRatings,
		"averageRating": stats.AverageRating,
	})
}
