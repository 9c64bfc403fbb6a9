package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"placedin/services"
	"placedin/utils"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doAuthRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("ValidAccessToken", func(t *testing.T) {
		token, err := services.GenerateToken("user-123")
		if err != nil {
			t.Fatalf("GenerateToken() error: %v", err)
		}

		w := doAuthRequest(router, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		refresh, err := services.GenerateRefreshToken("user-123")
		if err != nil {
			t.Fatalf("GenerateRefreshToken() error: %v", err)
		}

		w := doAuthRequest(router, "Bearer "+refresh)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("MissingHeader", func(t *testing.T) {
		w := doAuthRequest(router, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		w := doAuthRequest(router, "Token abc")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		w := doAuthRequest(router, "Bearer not-a-jwt")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestAdminMiddleware(t *testing.T) {
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, active bool) *gin.Engine {
		router := gin.New()
		lookup := func(userID string) (string, bool, error) {
			return role, active, nil
		}
		router.GET("/admin", AuthMiddleware(), AdminMiddleware(lookup), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	token, err := services.GenerateToken("user-123")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	t.Run("ActiveAdminAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter("admin", true).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("StudentForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter("student", true).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("SuspendedAdminForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		newRouter("admin", false).ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})
}
