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

type ExperienceRepo struct {
	MongoCollection *mongo.Collection
}

func GetExperienceRepo(client *mongo.Client) *ExperienceRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("EXPERIENCES_COLLECTION", "experiences")
	return &ExperienceRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type ExperienceSearchOptions struct {
	Company        string
	GraduationYear int
	Query          string
	Status         string
	Page           int
	PageSize       int
}

func (r *ExperienceRepo) InsertExperience(exp *model.Experience) error {
	timer := utils.TrackDBOperation("insert", "experiences")
	defer timer.ObserveDuration()

	if exp == nil {
		return fmt.Errorf("experience cannot be nil")
	}
	if exp.ExperienceID == "" || exp.UserID == "" {
		utils.TrackError("database", "invalid_experience_data")
		return fmt.Errorf("invalid experience data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, exp); err != nil {
		utils.TrackError("database", "experience_insert_failed")
		return fmt.Errorf("failed to insert experience: %w", err)
	}

	utils.TrackExperienceOperation("submit")
	return nil
}

func (r *ExperienceRepo) GetExperience(experienceID string) (*model.Experience, error) {
	timer := utils.TrackDBOperation("find", "experiences")
	defer timer.ObserveDuration()

	if experienceID == "" {
		return nil, fmt.Errorf("experienceID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var exp model.Experience
	err := r.MongoCollection.FindOne(ctx, bson.M{"experience_id": experienceID}).Decode(&exp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "experience_fetch_failed")
		return nil, fmt.Errorf("failed to fetch experience: %w", err)
	}

	return &exp, nil
}

// SearchExperiences lists experiences matching the options, newest first,
// with the total match count for pagination.
func (r *ExperienceRepo) SearchExperiences(opts ExperienceSearchOptions) ([]*model.Experience, int64, error) {
	timer := utils.TrackDBOperation("find", "experiences")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.Company != "" {
		filter["company"] = opts.Company
	}
	if opts.GraduationYear != 0 {
		filter["graduation_year"] = opts.GraduationYear
	}
	if opts.Query != "" {
		filter["$text"] = bson.M{"$search": opts.Query}
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count experiences: %w", err)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	findOpts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.MongoCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.TrackError("database", "experience_search_failed")
		return nil, 0, fmt.Errorf("failed to search experiences: %w", err)
	}
	defer cursor.Close(ctx)

	var experiences []*model.Experience
	if err = cursor.All(ctx, &experiences); err != nil {
		return nil, 0, fmt.Errorf("failed to decode experiences: %w", err)
	}

	return experiences, total, nil
}

// SetModerationStatus moves an experience into a moderation state and stamps
// the acting admin.
func (r *ExperienceRepo) SetModerationStatus(experienceID, status, adminID string) error {
	timer := utils.TrackDBOperation("update", "experiences")
	defer timer.ObserveDuration()

	if experienceID == "" {
		return fmt.Errorf("experienceID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":       status,
			"moderated_by": adminID,
			"moderated_at": now,
			"updated_at":   now,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"experience_id": experienceID}, update)
	if err != nil {
		utils.TrackError("database", "experience_moderation_failed")
		return fmt.Errorf("failed to update experience status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("experience not found")
	}

	return nil
}

func (r *ExperienceRepo) DeleteExperience(experienceID string) error {
	timer := utils.TrackDBOperation("delete", "experiences")
	defer timer.ObserveDuration()

	if experienceID == "" {
		return fmt.Errorf("experienceID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"experience_id": experienceID})
	if err != nil {
		utils.TrackError("database", "experience_deletion_failed")
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("experience not found")
	}

	utils.TrackExperienceOperation("delete")
	return nil
}

// TopCompanies ranks companies by approved-experience count, for the daily
// analytics snapshot.
func (r *ExperienceRepo) TopCompanies(limit int) ([]model.LabelCount, error) {
	return r.topByField("$company", limit)
}

// TopGraduationYears ranks graduation years by approved-experience count.
func (r *ExperienceRepo) TopGraduationYears(limit int) ([]model.LabelCount, error) {
	return r.topByField("$graduation_year", limit)
}

func (r *ExperienceRepo) topByField(field string, limit int) ([]model.LabelCount, error) {
	timer := utils.TrackDBOperation("aggregate", "experiences")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: model.ExperienceApproved}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "experience_topn_failed")
		return nil, fmt.Errorf("failed to aggregate top values: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    interface{} `bson:"_id"`
		Count int         `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode top values: %w", err)
	}

	result := make([]model.LabelCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.LabelCount{
			Label: fmt.Sprintf("%v", row.ID),
			Count: row.Count,
		})
	}

	return result, nil
}
