package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"placedin/model"
	"placedin/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminActivityRepo is the append-only audit trail for admin actions. It
// exposes no update or delete: corrections are recorded as new entries.
type AdminActivityRepo struct {
	MongoCollection *mongo.Collection
}

func GetAdminActivityRepo(client *mongo.Client) *AdminActivityRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("ADMIN_ACTIVITY_COLLECTION", "admin_activity")
	return &AdminActivityRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// RecordActivity validates the action and target type against their closed
// sets and inserts a single immutable entry.
func (r *AdminActivityRepo) RecordActivity(activity *model.AdminActivity) error {
	timer := utils.TrackDBOperation("insert", "admin_activity")
	defer timer.ObserveDuration()

	if activity == nil {
		utils.TrackError("database", "nil_activity")
		return fmt.Errorf("activity cannot be nil")
	}

	if activity.AdminID == "" || activity.TargetID == "" {
		utils.TrackError("database", "invalid_activity_data")
		return fmt.Errorf("invalid activity data: missing required fields")
	}

	if !model.IsValidAdminAction(activity.Action) {
		utils.TrackError("validation", "unknown_admin_action")
		return fmt.Errorf("unknown admin action %q", activity.Action)
	}

	if !model.IsValidTargetType(activity.TargetType) {
		utils.TrackError("validation", "unknown_target_type")
		return fmt.Errorf("unknown target type %q", activity.TargetType)
	}

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, activity); err != nil {
		utils.TrackError("database", "activity_record_failed")
		return fmt.Errorf("failed to record admin activity: %w", err)
	}

	return nil
}

// GetRecentActivity returns the unfiltered feed, newest first.
func (r *AdminActivityRepo) GetRecentActivity(limit int64) ([]*model.AdminActivity, error) {
	return r.findActivity(bson.M{}, limit)
}

// GetActivityByAdmin returns one admin's actions, newest first.
func (r *AdminActivityRepo) GetActivityByAdmin(adminID string, limit int64) ([]*model.AdminActivity, error) {
	if adminID == "" {
		return nil, fmt.Errorf("adminID cannot be empty")
	}
	return r.findActivity(bson.M{"admin_id": adminID}, limit)
}

// GetActivityByAction returns all entries of one action type, newest first.
func (r *AdminActivityRepo) GetActivityByAction(action string, limit int64) ([]*model.AdminActivity, error) {
	if !model.IsValidAdminAction(action) {
		return nil, fmt.Errorf("unknown admin action %q", action)
	}
	return r.findActivity(bson.M{"action": action}, limit)
}

// GetActivityByTarget returns everything recorded against a target, newest
// first.
func (r *AdminActivityRepo) GetActivityByTarget(targetType, targetID string, limit int64) ([]*model.AdminActivity, error) {
	if !model.IsValidTargetType(targetType) {
		return nil, fmt.Errorf("unknown target type %q", targetType)
	}
	if targetID == "" {
		return nil, fmt.Errorf("targetID cannot be empty")
	}
	return r.findActivity(bson.M{"target_type": targetType, "target_id": targetID}, limit)
}

func (r *AdminActivityRepo) findActivity(filter bson.M, limit int64) ([]*model.AdminActivity, error) {
	timer := utils.TrackDBOperation("find", "admin_activity")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "activity_fetch_failed")
		return nil, fmt.Errorf("failed to fetch admin activity: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.AdminActivity
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode admin activity: %w", err)
	}

	return entries, nil
}
