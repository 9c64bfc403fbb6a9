package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"placedin/services"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func setupRefreshRouter(t *testing.T) *gin.Engine {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/refresh", RefreshTokenHandler)
	return router
}

func TestRefreshTokenHandler(t *testing.T) {
	router := setupRefreshRouter(t)

	refreshToken, err := services.GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Data struct {
			AccessToken     string `json:"access_token"`
			NewRefreshToken string `json:"new_refresh_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.AccessToken == "" || resp.Data.NewRefreshToken == "" {
		t.Errorf("response missing tokens: %s", w.Body.String())
	}
}

func TestRefreshTokenHandlerRejectsAccessToken(t *testing.T) {
	router := setupRefreshRouter(t)

	// An access token has no refresh type claim and must be rejected
	accessToken, err := services.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRefreshTokenHandlerMissingHeader(t *testing.T) {
	router := setupRefreshRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRefreshTokenHandlerGarbageToken(t *testing.T) {
	router := setupRefreshRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
