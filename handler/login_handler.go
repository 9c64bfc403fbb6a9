package handler

import (
	"log"
	"time"

	"placedin/middleware"
	"placedin/model"
	"placedin/repository"
	"placedin/services"
	"placedin/usecase"
	"placedin/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

type LoginHandlerDeps struct {
	UserService   *usecase.UserService
	SessionRepo   *repository.SessionRepo
	ActivityRepo  *repository.AdminActivityRepo
	AnalyticsRepo *repository.AnalyticsRepo
	SessionTTL    time.Duration
	MaxSessions   int
}

func LoginHandler(c *gin.Context, deps *LoginHandlerDeps) {
	var loginReq model.LoginRequest

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := deps.UserService.FindUserByUsername(loginReq.Username)
	if err != nil {
		utils.TrackError("auth", "user_lookup")
		utils.TrackAuthAttempt("failure", "invalid_username")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "user_not_found")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if !user.IsActive {
		utils.TrackAuthAttempt("failure", "account_suspended")
		utils.Forbidden(c, "Account suspended")
		return
	}

	checkPassword, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil || !checkPassword {
		utils.TrackAuthAttempt("failure", "invalid_password")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if user.TwoFactorEnabled {
		if loginReq.TwoFactorCode == "" {
			utils.TrackAuthAttempt("pending", "2fa_required")
			utils.Success(c, gin.H{
				"requires_2fa": true,
				"message":      "2FA code required",
			})
			return
		}

		if !totp.Validate(loginReq.TwoFactorCode, user.TwoFactorSecret) {
			utils.TrackAuthAttempt("failure", "invalid_2fa")
			utils.Unauthorized(c, "Invalid 2FA code")
			return
		}
		utils.TrackAuthAttempt("success", "2fa")
	}

	// Best-effort session cap: above the limit the stalest session goes
	activeCount, err := deps.SessionRepo.CountActiveSessions(user.UserID)
	if err != nil {
		utils.TrackError("session", "count_check")
		utils.InternalError(c, "Failed to check session count")
		return
	}

	var notice string
	if activeCount >= deps.MaxSessions {
		if err := deps.SessionRepo.EndLeastActiveSession(user.UserID); err != nil {
			utils.TrackError("session", "session_cleanup")
			utils.InternalError(c, "Failed to manage sessions")
			return
		}
		notice = "Logged out of least active session due to session limit"
		log.Printf("Ended least active session for user %s due to session limit", user.UserID)
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "Failed to generate token")
		return
	}

	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	if err := middleware.CreateSession(c, user.UserID, deps.SessionTTL, deps.SessionRepo); err != nil {
		utils.TrackError("session", "creation")
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.TrackAuthAttempt("success", "login")

	if deps.AnalyticsRepo != nil {
		_ = deps.AnalyticsRepo.UpdateDailyMetrics(time.Now(), model.MetricDeltas{Logins: 1})
	}

	// Admin logins land in the audit trail
	if user.Role == model.RoleAdmin && deps.ActivityRepo != nil {
		_ = deps.ActivityRepo.RecordActivity(&model.AdminActivity{
			AdminID:    user.UserID,
			Action:     model.ActionAdminLogin,
			TargetType: model.TargetSystem,
			TargetID:   user.UserID,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			CreatedAt:  time.Now(),
		})
	}

	response := gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
		"user": gin.H{
			"id":       user.UserID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	}
	if notice != "" {
		response["notice"] = notice
	}

	utils.Success(c, response)
}
