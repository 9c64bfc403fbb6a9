package repository

import (
	"context"
	"testing"
	"time"

	"placedin/model"
	"placedin/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

func newTestSession(userID string) *model.Session {
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

func TestSessionLifecycle(t *testing.T) {
	coll := newTestCollection(t, "testSessions")
	repo := &SessionRepo{MongoCollection: coll}

	userID := uuid.New().String()
	session := newTestSession(userID)

	t.Run("CreateSession", func(t *testing.T) {
		if err := repo.CreateSession(session); err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}
	})

	t.Run("CreateSessionRejectsPastExpiry", func(t *testing.T) {
		expired := newTestSession(userID)
		expired.ExpiresAt = time.Now().Add(-time.Hour)
		if err := repo.CreateSession(expired); err == nil {
			t.Error("CreateSession() accepted a session expiring in the past")
		}
	})

	t.Run("GetSession", func(t *testing.T) {
		got, err := repo.GetSession(session.SessionID)
		if err != nil {
			t.Fatalf("GetSession() error: %v", err)
		}
		if got == nil {
			t.Fatal("GetSession() returned nil for existing session")
		}
		if got.UserID != userID {
			t.Errorf("UserID = %q, want %q", got.UserID, userID)
		}
	})

	t.Run("GetSessionMissingReturnsNil", func(t *testing.T) {
		got, err := repo.GetSession(uuid.New().String())
		if err != nil {
			t.Fatalf("GetSession() error: %v", err)
		}
		if got != nil {
			t.Error("GetSession() returned a session for an unknown id")
		}
	})

	t.Run("TouchSessionUpdatesActivity", func(t *testing.T) {
		before, err := repo.GetSession(session.SessionID)
		if err != nil || before == nil {
			t.Fatalf("GetSession() before touch failed: %v", err)
		}

		time.Sleep(10 * time.Millisecond)
		if err := repo.TouchSession(session.SessionID); err != nil {
			t.Fatalf("TouchSession() error: %v", err)
		}

		var after model.Session
		if err := coll.FindOne(context.Background(), bson.M{"session_id": session.SessionID}).Decode(&after); err != nil {
			t.Fatalf("failed to read session back: %v", err)
		}
		if !after.LastActivityAt.After(before.LastActivityAt) {
			t.Error("TouchSession() did not advance last_activity_at")
		}
	})

	t.Run("TouchMissingSessionIsNoOp", func(t *testing.T) {
		if err := repo.TouchSession(uuid.New().String()); err != nil {
			t.Errorf("TouchSession() on unknown id returned error: %v", err)
		}
	})

	t.Run("GetUserActiveSessions", func(t *testing.T) {
		second := newTestSession(userID)
		if err := repo.CreateSession(second); err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}

		sessions, err := repo.GetUserActiveSessions(userID)
		if err != nil {
			t.Fatalf("GetUserActiveSessions() error: %v", err)
		}
		if len(sessions) != 2 {
			t.Errorf("GetUserActiveSessions() returned %d sessions, want 2", len(sessions))
		}
	})

	t.Run("EndLeastActiveSession", func(t *testing.T) {
		count, err := repo.CountActiveSessions(userID)
		if err != nil {
			t.Fatalf("CountActiveSessions() error: %v", err)
		}

		if err := repo.EndLeastActiveSession(userID); err != nil {
			t.Fatalf("EndLeastActiveSession() error: %v", err)
		}

		after, err := repo.CountActiveSessions(userID)
		if err != nil {
			t.Fatalf("CountActiveSessions() error: %v", err)
		}
		if after != count-1 {
			t.Errorf("active sessions = %d after ending one, want %d", after, count-1)
		}
	})

	t.Run("EndAllUserSessions", func(t *testing.T) {
		if err := repo.EndAllUserSessions(userID); err != nil {
			t.Fatalf("EndAllUserSessions() error: %v", err)
		}

		count, err := repo.CountActiveSessions(userID)
		if err != nil {
			t.Fatalf("CountActiveSessions() error: %v", err)
		}
		if count != 0 {
			t.Errorf("active sessions = %d after revoking all, want 0", count)
		}
	})

	t.Run("TouchRevokedSessionStaysInactive", func(t *testing.T) {
		if err := repo.TouchSession(session.SessionID); err != nil {
			t.Fatalf("TouchSession() error: %v", err)
		}

		var got model.Session
		if err := coll.FindOne(context.Background(), bson.M{"session_id": session.SessionID}).Decode(&got); err != nil {
			t.Fatalf("failed to read session back: %v", err)
		}
		if got.IsActive {
			t.Error("touching a revoked session reactivated it")
		}
	})
}

func TestDeleteExpiredSessions(t *testing.T) {
	coll := newTestCollection(t, "testSessionCleanup")
	repo := &SessionRepo{MongoCollection: coll}

	userID := uuid.New().String()

	live := newTestSession(userID)
	if err := repo.CreateSession(live); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	// Expired and revoked rows are inserted directly; CreateSession refuses
	// sessions that are already past their expiry.
	expired := newTestSession(userID)
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	if _, err := coll.InsertOne(context.Background(), expired); err != nil {
		t.Fatalf("failed to insert expired session: %v", err)
	}

	revoked := newTestSession(userID)
	revoked.IsActive = false
	if _, err := coll.InsertOne(context.Background(), revoked); err != nil {
		t.Fatalf("failed to insert revoked session: %v", err)
	}

	deleted, err := repo.DeleteExpiredSessions()
	if err != nil {
		t.Fatalf("DeleteExpiredSessions() error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteExpiredSessions() removed %d sessions, want 2", deleted)
	}

	// The sweep is idempotent
	deleted, err = repo.DeleteExpiredSessions()
	if err != nil {
		t.Fatalf("DeleteExpiredSessions() second run error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second DeleteExpiredSessions() removed %d sessions, want 0", deleted)
	}

	got, err := repo.GetSession(live.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error: %v", err)
	}
	if got == nil {
		t.Error("cleanup removed a live session")
	}
}

func TestEndAllUserSessionsDropsCachedCopies(t *testing.T) {
	coll := newTestCollection(t, "testSessionsCacheRevoke")
	repo := &SessionRepo{MongoCollection: coll}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	services.GlobalSessionCache = services.NewSessionCacheWithClient(client)
	t.Cleanup(func() { services.GlobalSessionCache = nil })

	userID := uuid.New().String()
	first := newTestSession(userID)
	second := newTestSession(userID)
	for _, session := range []*model.Session{first, second} {
		if err := repo.CreateSession(session); err != nil {
			t.Fatalf("CreateSession() error: %v", err)
		}
	}

	if err := repo.EndAllUserSessions(userID); err != nil {
		t.Fatalf("EndAllUserSessions() error: %v", err)
	}

	// Reads must not resurrect a revoked session from the per-session
	// cache keys written at creation time.
	for _, session := range []*model.Session{first, second} {
		got, err := repo.GetSession(session.SessionID)
		if err != nil {
			t.Fatalf("GetSession(%s) error: %v", session.SessionID, err)
		}
		if got == nil {
			t.Fatalf("GetSession(%s) returned nil for revoked session", session.SessionID)
		}
		if got.IsActive {
			t.Errorf("session %s still reads active after EndAllUserSessions", session.SessionID)
		}
	}

	active, err := repo.GetUserActiveSessions(userID)
	if err != nil {
		t.Fatalf("GetUserActiveSessions() error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("GetUserActiveSessions() = %d sessions, want 0", len(active))
	}
}
