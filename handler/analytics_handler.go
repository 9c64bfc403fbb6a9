package handler

import (
	"time"

	"placedin/model"
	"placedin/repository"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

// TrackPageViewHandler is the write side of the analytics rollup; the
// frontend fires it on navigation. No auth, nothing user-specific stored.
func TrackPageViewHandler(c *gin.Context, analyticsRepo *repository.AnalyticsRepo) {
	if err := analyticsRepo.UpdateDailyMetrics(time.Now(), model.MetricDeltas{PageViews: 1}); err != nil {
		utils.InternalError(c, "Failed to record page view")
		return
	}

	utils.Success(c, gin.H{
		"message": "Recorded",
	})
}

func DailyAnalyticsHandler(c *gin.Context, analyticsRepo *repository.AnalyticsRepo) {
	if _, ok := adminID(c); !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		docs, err := analyticsRepo.GetMetricsRange(fromDate, date)
		if err != nil {
			utils.InternalError(c, "Failed to fetch analytics")
			return
		}
		utils.Success(c, gin.H{"days": docs})
		return
	}

	doc, err := analyticsRepo.GetDailyMetrics(date)
	if err != nil {
		utils.InternalError(c, "Failed to fetch analytics")
		return
	}
	if doc == nil {
		doc = &model.DailyAnalytics{Date: model.TruncateToDay(date)}
	}

	utils.Success(c, gin.H{
		"analytics": doc,
	})
}
