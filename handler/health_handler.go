package handler

import (
	"context"
	"time"

	"placedin/services"
	"placedin/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoOK := utils.MongoClient != nil && utils.MongoClient.Ping(ctx, readpref.Primary()) == nil
	cacheOK := services.GlobalSessionCache.IsConnected()

	status := "ok"
	if !mongoOK {
		status = "degraded"
	}

	utils.Success(c, gin.H{
		"status": status,
		"mongo":  mongoOK,
		"redis":  cacheOK,
		"system": gin.H{
			"cpu_percent":    utils.GetCPUUsage(),
			"memory_percent": utils.GetMemoryUsage(),
		},
	})
}
