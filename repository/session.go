package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"placedin/model"
	"placedin/services"
	"placedin/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("SESSIONS_COLLECTION", "sessions")
	return &SessionRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *SessionRepo) CreateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if session == nil {
		utils.TrackError("database", "nil_session")
		return fmt.Errorf("session cannot be nil")
	}

	if session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	if !session.ExpiresAt.After(time.Now()) {
		utils.TrackError("database", "session_already_expired")
		return fmt.Errorf("session expiry must be in the future")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("Warning: Failed to cache session: %v", err)
		}
		if err := services.GlobalSessionCache.InvalidateUserSessions(session.UserID); err != nil {
			log.Printf("Warning: Failed to invalidate user sessions cache: %v", err)
		}
	}

	return nil
}

func (r *SessionRepo) GetSession(sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		utils.TrackError("database", "empty_session_id")
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			utils.TrackCacheOperation("session", true)
			return session, nil
		}
		utils.TrackCacheOperation("session", false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session from database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(&session); err != nil {
			log.Printf("Warning: Failed to cache session: %v", err)
		}
	}

	return &session, nil
}

// TouchSession refreshes last_activity_at for an active, unexpired session.
// A missing or inactive session is a silent no-op: the caller denies access
// either way.
func (r *SessionRepo) TouchSession(sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	result, err := r.MongoCollection.UpdateOne(
		ctx,
		bson.M{
			"session_id": sessionID,
			"is_active":  true,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"last_activity_at": now}},
	)
	if err != nil {
		utils.TrackError("database", "session_touch_failed")
		return fmt.Errorf("failed to touch session: %w", err)
	}

	if result.MatchedCount > 0 && services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			session.LastActivityAt = now
			if err := services.GlobalSessionCache.SetSession(session); err != nil {
				log.Printf("Warning: Failed to refresh cached session: %v", err)
			}
		}
	}

	return nil
}

func (r *SessionRepo) UpdateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"last_activity_at": time.Now(),
			"is_active":        session.IsActive,
			"expires_at":       session.ExpiresAt,
			"device_info":      session.DeviceInfo,
			"ip_address":       session.IPAddress,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"session_id": session.SessionID}, update)
	if err != nil {
		return fmt.Errorf("failed to update session in database: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("session not found")
	}

	if services.GlobalSessionCache != nil {
		if session.IsActive {
			if err := services.GlobalSessionCache.SetSession(session); err != nil {
				log.Printf("Warning: Failed to update session cache: %v", err)
			}
		} else {
			if err := services.GlobalSessionCache.DeleteSession(session.SessionID); err != nil {
				log.Printf("Warning: Failed to drop cached session: %v", err)
			}
		}
		if err := services.GlobalSessionCache.InvalidateUserSessions(session.UserID); err != nil {
			log.Printf("Warning: Failed to invalidate user sessions cache: %v", err)
		}
	}

	return nil
}

// EndAllUserSessions deactivates every active session for the user in one
// UpdateMany. Each row flips atomically; after a successful return no session
// owned by the user is active.
func (r *SessionRepo) EndAllUserSessions(userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Collect the ids up front: GetSession serves the session:<id> keys
	// before Mongo, so each one has to be dropped, not just the list key.
	var sessionIDs []string
	if services.GlobalSessionCache != nil {
		cursor, err := r.MongoCollection.Find(ctx,
			bson.M{"user_id": userID, "is_active": true},
			options.Find().SetProjection(bson.M{"session_id": 1}))
		if err != nil {
			log.Printf("Warning: Failed to list sessions for cache invalidation: %v", err)
		} else {
			var rows []model.Session
			if err := cursor.All(ctx, &rows); err != nil {
				log.Printf("Warning: Failed to decode sessions for cache invalidation: %v", err)
			}
			for _, row := range rows {
				sessionIDs = append(sessionIDs, row.SessionID)
			}
		}
	}

	update := bson.M{
		"$set": bson.M{
			"is_active":        false,
			"last_activity_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateMany(ctx, bson.M{"user_id": userID, "is_active": true}, update)
	if err != nil {
		return fmt.Errorf("failed to end user sessions: %w", err)
	}

	if services.GlobalSessionCache != nil {
		for _, sessionID := range sessionIDs {
			if err := services.GlobalSessionCache.DeleteSession(sessionID); err != nil {
				log.Printf("Warning: Failed to drop cached session: %v", err)
			}
		}
		if err := services.GlobalSessionCache.InvalidateUserSessions(userID); err != nil {
			log.Printf("Warning: Failed to invalidate user sessions cache: %v", err)
		}
	}

	log.Printf("Ended %d active sessions for user %s", result.ModifiedCount, userID)
	return nil
}

// DeleteExpiredSessions removes every session past its expiry or already
// deactivated. Safe to run concurrently with live traffic and idempotent: a
// second consecutive run deletes nothing. The TTL index on expires_at covers
// the expired half in the background; this sweep also clears inactive rows.
func (r *SessionRepo) DeleteExpiredSessions() (int64, error) {
	timer := utils.TrackDBOperation("delete", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"expires_at": bson.M{"$lt": time.Now()}},
			{"is_active": false},
		},
	}

	result, err := r.MongoCollection.DeleteMany(ctx, filter)
	if err != nil {
		utils.TrackError("database", "session_cleanup_failed")
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	if result.DeletedCount > 0 {
		log.Printf("Cleaned up %d expired or inactive sessions", result.DeletedCount)
	}
	return result.DeletedCount, nil
}

// StartCleanupTask runs the expiry sweep on a fixed interval until the
// context is cancelled.
func (r *SessionRepo) StartCleanupTask(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.DeleteExpiredSessions(); err != nil {
					log.Printf("Error cleaning up expired sessions: %v", err)
				}
				r.updateActiveSessionsGauge()
			}
		}
	}()
}

func (r *SessionRepo) updateActiveSessionsGauge() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		log.Printf("Error counting active sessions for metrics: %v", err)
		return
	}
	utils.UpdateActiveSessions(float64(count))
}

func (r *SessionRepo) GetUserActiveSessions(userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if userID == "" {
		utils.TrackError("database", "empty_user_id")
		return nil, fmt.Errorf("userID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		sessions, isStale, err := services.GlobalSessionCache.GetUserSessions(userID)
		if err == nil && sessions != nil && !isStale {
			utils.TrackCacheOperation("user_sessions", true)
			return sessions, nil
		}
		utils.TrackCacheOperation("user_sessions", false)
	}

	return r.fetchAndCacheActiveSessions(userID)
}

func (r *SessionRepo) fetchAndCacheActiveSessions(userID string) ([]*model.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"last_activity_at": -1})
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{
			"user_id":    userID,
			"is_active":  true,
			"expires_at": bson.M{"$gt": time.Now()},
		}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.CacheUserSessions(userID, sessions); err != nil {
			log.Printf("Warning: Failed to cache user sessions: %v", err)
		}
	}

	return sessions, nil
}

// EndLeastActiveSession deactivates the session with the oldest activity.
// Together with CountActiveSessions this enforces the per-user session cap
// best-effort; there is no unique (user, device) index.
func (r *SessionRepo) EndLeastActiveSession(userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetSort(bson.M{"last_activity_at": 1})
	update := bson.M{
		"$set": bson.M{
			"is_active":        false,
			"last_activity_at": time.Now(),
		},
	}

	var ended model.Session
	err := r.MongoCollection.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, "is_active": true},
		update,
		opts,
	).Decode(&ended)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("no active sessions found")
		}
		return fmt.Errorf("failed to end least active session: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(ended.SessionID); err != nil {
			log.Printf("Warning: Failed to delete session from cache: %v", err)
		}
		if err := services.GlobalSessionCache.InvalidateUserSessions(userID); err != nil {
			log.Printf("Warning: Failed to invalidate user sessions cache: %v", err)
		}
	}

	return nil
}

func (r *SessionRepo) CountActiveSessions(userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("userID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		sessions, isStale, err := services.GlobalSessionCache.GetUserSessions(userID)
		if err == nil && !isStale && sessions != nil {
			count := 0
			now := time.Now()
			for _, session := range sessions {
				if session.IsActive && session.ExpiresAt.After(now) {
					count++
				}
			}
			return count, nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(
		ctx,
		bson.M{
			"user_id":    userID,
			"is_active":  true,
			"expires_at": bson.M{"$gt": time.Now()},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}

	return int(count), nil
}
