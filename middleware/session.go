package middleware

import (
	"fmt"
	"time"

	"placedin/model"
	"placedin/repository"
	"placedin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware resolves the session cookie and refreshes the session's
// activity timestamp. An unknown, inactive or timed-out session clears the
// cookie and falls through unauthenticated.
func SessionMiddleware(sessionRepo *repository.SessionRepo, inactivityCutoff time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(sessionID)
		if err != nil || session == nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > inactivityCutoff {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		sessionRepo.TouchSession(sessionID)

		c.Set("session", session)
		c.Set("session_id", sessionID)
		c.Next()
	}
}

// CreateSession issues a fresh session for the user and sets the cookie.
func CreateSession(c *gin.Context, userID string, ttl time.Duration, sessionRepo *repository.SessionRepo) error {
	session := newSession(c, userID, ttl)

	if err := sessionRepo.CreateSession(session); err != nil {
		return err
	}

	c.SetCookie(
		"session_id",
		session.SessionID,
		int(ttl.Seconds()),
		"/",
		"",
		true,
		true,
	)

	return nil
}

// newSession builds the session document from the request. An X-Device-ID
// header, when the client sends one, is kept as the session's external id
// for correlating sessions with the client's own device records.
func newSession(c *gin.Context, userID string, ttl time.Duration) *model.Session {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)

	now := time.Now()
	return &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		ExternalID:     c.GetHeader("X-Device-ID"),
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     fmt.Sprintf("%s on %s (%s)", browser, os, device),
		IPAddress:      c.ClientIP(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		IsActive:       true,
	}
}
