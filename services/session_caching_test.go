package services

import (
	"testing"
	"time"

	"placedin/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *SessionCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionCacheWithClient(client)
}

func testSession(userID string) *model.Session {
	now := time.Now()
	return &model.Session{
		SessionID:      uuid.New().String(),
		UserID:         userID,
		DisplayName:    "Chrome on Windows (Desktop)",
		DeviceInfo:     "test-agent",
		IPAddress:      "127.0.0.1",
		CreatedAt:      now,
		ExpiresAt:      now.Add(24 * time.Hour),
		LastActivityAt: now,
		IsActive:       true,
	}
}

func TestSessionCacheSetAndGet(t *testing.T) {
	cache := newTestCache(t)
	session := testSession("user-1")

	if err := cache.SetSession(session); err != nil {
		t.Fatalf("SetSession() error: %v", err)
	}

	got, err := cache.GetSession(session.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetSession() returned nil for cached session")
	}
	if got.SessionID != session.SessionID {
		t.Errorf("SessionID = %q, want %q", got.SessionID, session.SessionID)
	}
	if got.UserID != session.UserID {
		t.Errorf("UserID = %q, want %q", got.UserID, session.UserID)
	}
}

func TestSessionCacheMissReturnsNil(t *testing.T) {
	cache := newTestCache(t)

	got, err := cache.GetSession("does-not-exist")
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got != nil {
		t.Errorf("GetSession() = %+v, want nil on miss", got)
	}
}

func TestSessionCacheRejectsExpiredSession(t *testing.T) {
	cache := newTestCache(t)
	session := testSession("user-1")
	session.ExpiresAt = time.Now().Add(-time.Minute)

	if err := cache.SetSession(session); err == nil {
		t.Error("SetSession() accepted an already expired session")
	}
}

func TestSessionCacheDelete(t *testing.T) {
	cache := newTestCache(t)
	session := testSession("user-1")

	if err := cache.SetSession(session); err != nil {
		t.Fatalf("SetSession() error: %v", err)
	}
	if err := cache.DeleteSession(session.SessionID); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}

	got, err := cache.GetSession(session.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got != nil {
		t.Error("GetSession() returned a session after deletion")
	}
}

func TestUserSessionsCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	sessions := []*model.Session{testSession("user-1"), testSession("user-1")}

	if err := cache.CacheUserSessions("user-1", sessions); err != nil {
		t.Fatalf("CacheUserSessions() error: %v", err)
	}

	got, isStale, err := cache.GetUserSessions("user-1")
	if err != nil {
		t.Fatalf("GetUserSessions() error: %v", err)
	}
	if isStale {
		t.Error("GetUserSessions() reported a fresh entry as stale")
	}
	if len(got) != 2 {
		t.Fatalf("GetUserSessions() returned %d sessions, want 2", len(got))
	}
}

func TestInvalidateUserSessions(t *testing.T) {
	cache := newTestCache(t)
	sessions := []*model.Session{testSession("user-1")}

	if err := cache.CacheUserSessions("user-1", sessions); err != nil {
		t.Fatalf("CacheUserSessions() error: %v", err)
	}
	if err := cache.InvalidateUserSessions("user-1"); err != nil {
		t.Fatalf("InvalidateUserSessions() error: %v", err)
	}

	got, _, err := cache.GetUserSessions("user-1")
	if err != nil {
		t.Fatalf("GetUserSessions() error: %v", err)
	}
	if got != nil {
		t.Error("GetUserSessions() returned sessions after invalidation")
	}
}
