package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.131 Safari/537.36"

func newSessionContext(t *testing.T, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestNewSession(t *testing.T) {
	c := newSessionContext(t, map[string]string{
		"User-Agent":  chromeUA,
		"X-Device-ID": "device-42",
	})

	before := time.Now()
	session := newSession(c, "user-123", time.Hour)

	if session.SessionID == "" {
		t.Error("SessionID is empty")
	}
	if session.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", session.UserID, "user-123")
	}
	if session.ExternalID != "device-42" {
		t.Errorf("ExternalID = %q, want %q", session.ExternalID, "device-42")
	}
	if !session.IsActive {
		t.Error("new session is not active")
	}
	if session.DeviceInfo != "Chrome on Windows (Desktop)" {
		t.Errorf("DeviceInfo = %q, want %q", session.DeviceInfo, "Chrome on Windows (Desktop)")
	}

	wantExpiry := before.Add(time.Hour)
	if session.ExpiresAt.Before(wantExpiry) || session.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want about %v", session.ExpiresAt, wantExpiry)
	}
}

func TestNewSessionWithoutDeviceHeader(t *testing.T) {
	c := newSessionContext(t, map[string]string{"User-Agent": chromeUA})

	session := newSession(c, "user-123", time.Hour)
	if session.ExternalID != "" {
		t.Errorf("ExternalID = %q, want empty", session.ExternalID)
	}
}
