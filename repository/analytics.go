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

type AnalyticsRepo struct {
	MongoCollection *mongo.Collection
}

func GetAnalyticsRepo(client *mongo.Client) *AnalyticsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("ANALYTICS_COLLECTION", "daily_analytics")
	return &AnalyticsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// UpdateDailyMetrics applies the non-zero deltas to the document for the
// given day, creating it on first write. The whole thing is one upsert with
// $inc, so concurrent callers for the same day never lose updates.
func (r *AnalyticsRepo) UpdateDailyMetrics(date time.Time, deltas model.MetricDeltas) error {
	timer := utils.TrackDBOperation("update", "daily_analytics")
	defer timer.ObserveDuration()

	inc := bson.M{}
	if deltas.Registrations != 0 {
		inc["counters.registrations"] = deltas.Registrations
	}
	if deltas.ExperienceSubmissions != 0 {
		inc["counters.experience_submissions"] = deltas.ExperienceSubmissions
	}
	if deltas.ExperienceApprovals != 0 {
		inc["counters.experience_approvals"] = deltas.ExperienceApprovals
	}
	if deltas.ExperienceRejections != 0 {
		inc["counters.experience_rejections"] = deltas.ExperienceRejections
	}
	if deltas.PageViews != 0 {
		inc["counters.page_views"] = deltas.PageViews
	}
	if deltas.Logins != 0 {
		inc["counters.logins"] = deltas.Logins
	}
	if deltas.RatingSubmissions != 0 {
		inc["counters.rating_submissions"] = deltas.RatingSubmissions
	}

	if len(inc) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	day := model.TruncateToDay(date)
	update := bson.M{
		"$inc":         inc,
		"$set":         bson.M{"updated_at": time.Now()},
		"$setOnInsert": bson.M{"date": day},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.MongoCollection.UpdateOne(ctx, bson.M{"date": day}, update, opts); err != nil {
		utils.TrackError("database", "analytics_update_failed")
		return fmt.Errorf("failed to update daily metrics: %w", err)
	}

	return nil
}

// SetTopLists replaces the day's pre-aggregated top-N snapshots. Callers
// supply the ranked lists; this layer does no re-ranking.
func (r *AnalyticsRepo) SetTopLists(date time.Time, topCompanies, topGraduationYears []model.LabelCount) error {
	timer := utils.TrackDBOperation("update", "daily_analytics")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	day := model.TruncateToDay(date)
	update := bson.M{
		"$set": bson.M{
			"top_companies":        topCompanies,
			"top_graduation_years": topGraduationYears,
			"updated_at":           time.Now(),
		},
		"$setOnInsert": bson.M{"date": day},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.MongoCollection.UpdateOne(ctx, bson.M{"date": day}, update, opts); err != nil {
		utils.TrackError("database", "analytics_toplist_failed")
		return fmt.Errorf("failed to set top lists: %w", err)
	}

	return nil
}

// GetDailyMetrics fetches one day's document; nil, nil when no metric has
// been recorded for that day yet.
func (r *AnalyticsRepo) GetDailyMetrics(date time.Time) (*model.DailyAnalytics, error) {
	timer := utils.TrackDBOperation("find", "daily_analytics")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc model.DailyAnalytics
	err := r.MongoCollection.FindOne(ctx, bson.M{"date": model.TruncateToDay(date)}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "analytics_fetch_failed")
		return nil, fmt.Errorf("failed to fetch daily metrics: %w", err)
	}

	return &doc, nil
}

// GetMetricsRange returns the rollups between from and to inclusive, oldest
// first.
func (r *AnalyticsRepo) GetMetricsRange(from, to time.Time) ([]*model.DailyAnalytics, error) {
	timer := utils.TrackDBOperation("find", "daily_analytics")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"date": bson.M{
			"$gte": model.TruncateToDay(from),
			"$lte": model.TruncateToDay(to),
		},
	}

	opts := options.Find().SetSort(bson.M{"date": 1})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "analytics_range_failed")
		return nil, fmt.Errorf("failed to fetch metrics range: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*model.DailyAnalytics
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode metrics range: %w", err)
	}

	return docs, nil
}
