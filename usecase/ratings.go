package usecase

import (
	"fmt"
	"strings"
	"time"

	"placedin/model"
	"placedin/repository"
)

type RatingService struct {
	RatingRepo    *repository.RatingRepo
	AnalyticsRepo *repository.AnalyticsRepo
}

// ValidateRating normalizes and checks a rating before it reaches storage.
func ValidateRating(score int, label string) (string, error) {
	if score < 1 || score > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("%w: rating label is required", ErrValidation)
	}
	if len(label) > 100 {
		return "", fmt.Errorf("%w: rating label exceeds maximum length", ErrValidation)
	}

	return label, nil
}

func (s *RatingService) SubmitRating(score int, label, ipAddress, userAgent string) (*model.Rating, error) {
	label, err := ValidateRating(score, label)
	if err != nil {
		return nil, err
	}

	rating := &model.Rating{
		Score:     score,
		Label:     label,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}

	if err := s.RatingRepo.InsertRating(rating); err != nil {
		return nil, err
	}

	if s.AnalyticsRepo != nil {
		// Counter loss here would only skew the rollup, not the rating itself
		_ = s.AnalyticsRepo.UpdateDailyMetrics(time.Now(), model.MetricDeltas{RatingSubmissions: 1})
	}

	return rating, nil
}

func (s *RatingService) GetAllRatings() ([]*model.Rating, error) {
	return s.RatingRepo.GetAllRatings()
}

func (s *RatingService) GetStats() (*model.RatingStats, error) {
	return s.RatingRepo.GetRatingStats()
}
