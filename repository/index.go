package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessionsCollection := db.Collection("sessions")
	adminActivityCollection := db.Collection("admin_activity")
	analyticsCollection := db.Collection("daily_analytics")
	experiencesCollection := db.Collection("experiences")
	usersCollection := db.Collection("users")

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("session_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "last_activity_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_active_sessions"),
		},
		// TTL index: Mongo purges sessions once expires_at passes.
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("session_expiry_ttl").
				SetExpireAfterSeconds(0),
		},
	}

	adminActivityIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "admin_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("activity_by_admin"),
		},
		{
			Keys: bson.D{
				{Key: "action", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("activity_by_action"),
		},
		{
			Keys: bson.D{
				{Key: "target_type", Value: 1},
				{Key: "target_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("activity_by_target"),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().
				SetName("activity_feed"),
		},
	}

	analyticsIndexes := []mongo.IndexModel{
		// One document per calendar day.
		{
			Keys: bson.D{{Key: "date", Value: 1}},
			Options: options.Index().
				SetName("daily_date_unique").
				SetUnique(true),
		},
	}

	experienceIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "experience_id", Value: 1}},
			Options: options.Index().
				SetName("experience_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("experiences_by_status"),
		},
		{
			Keys: bson.D{
				{Key: "company", Value: 1},
				{Key: "graduation_year", Value: 1},
			},
			Options: options.Index().
				SetName("experiences_company_year"),
		},
		{
			Keys: bson.D{
				{Key: "company", Value: "text"},
				{Key: "role", Value: "text"},
				{Key: "content", Value: "text"},
			},
			Options: options.Index().
				SetName("experience_text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "company", Value: 10},
					{Key: "role", Value: 5},
					{Key: "content", Value: 2},
				}),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
	}

	if _, err := sessionsCollection.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	if _, err := adminActivityCollection.Indexes().CreateMany(ctx, adminActivityIndexes); err != nil {
		return fmt.Errorf("failed to create admin activity indexes: %w", err)
	}
	if _, err := analyticsCollection.Indexes().CreateMany(ctx, analyticsIndexes); err != nil {
		return fmt.Errorf("failed to create analytics indexes: %w", err)
	}
	if _, err := experiencesCollection.Indexes().CreateMany(ctx, experienceIndexes); err != nil {
		return fmt.Errorf("failed to create experience indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
