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

type RatingRepo struct {
	MongoCollection *mongo.Collection
}

func GetRatingRepo(client *mongo.Client) *RatingRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("RATINGS_COLLECTION", "ratings")
	return &RatingRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// InsertRating persists one rating. Scores outside [1,5] are rejected before
// anything is written.
func (r *RatingRepo) InsertRating(rating *model.Rating) error {
	timer := utils.TrackDBOperation("insert", "ratings")
	defer timer.ObserveDuration()

	if rating == nil {
		return fmt.Errorf("rating cannot be nil")
	}

	if rating.Score < 1 || rating.Score > 5 {
		utils.TrackError("validation", "rating_out_of_range")
		return fmt.Errorf("rating score must be between 1 and 5, got %d", rating.Score)
	}

	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, rating); err != nil {
		utils.TrackError("database", "rating_insert_failed")
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	utils.RatingsSubmittedTotal.Inc()
	return nil
}

// GetAllRatings returns every rating, newest first.
func (r *RatingRepo) GetAllRatings() ([]*model.Rating, error) {
	timer := utils.TrackDBOperation("find", "ratings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.TrackError("database", "ratings_fetch_failed")
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*model.Rating
	if err = cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	return ratings, nil
}

// GetRatingStats groups all ratings by score (ascending) and averages them.
// With no ratings the average is 0, not NaN.
func (r *RatingRepo) GetRatingStats() (*model.RatingStats, error) {
	timer := utils.TrackDBOperation("aggregate", "ratings")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$score"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "label", Value: bson.D{{Key: "$last", Value: "$label"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "rating_stats_failed")
		return nil, fmt.Errorf("failed to aggregate rating stats: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []model.RatingBucket
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode rating stats: %w", err)
	}

	stats := &model.RatingStats{Histogram: buckets}

	sum := 0
	for _, b := range buckets {
		stats.TotalRatings += b.Count
		sum += b.Score * b.Count
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalRatings)
	}

	return stats, nil
}
