package usecase

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"placedin/dto"
	"placedin/model"
	"placedin/repository"
	"placedin/utils"
)

const topListSize = 10

type ExperienceService struct {
	ExperienceRepo *repository.ExperienceRepo
	ActivityRepo   *repository.AdminActivityRepo
	AnalyticsRepo  *repository.AnalyticsRepo
}

func (s *ExperienceService) validateExperience(req *dto.SubmitExperienceRequest) error {
	req.Company = strings.TrimSpace(req.Company)
	if req.Company == "" {
		return fmt.Errorf("%w: company is required", ErrValidation)
	}

	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		return fmt.Errorf("%w: role is required", ErrValidation)
	}

	if !utils.ValidateGraduationYear(req.GraduationYear) {
		return fmt.Errorf("%w: graduation year out of range", ErrValidation)
	}

	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: experience content cannot be empty", ErrValidation)
	}

	return nil
}

// SubmitExperience stores a new experience in pending state and bumps the
// day's submission counter.
func (s *ExperienceService) SubmitExperience(userID string, req *dto.SubmitExperienceRequest) (*model.Experience, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if err := s.validateExperience(req); err != nil {
		return nil, err
	}

	now := time.Now()
	exp := &model.Experience{
		ExperienceID:    utils.GenerateID(),
		UserID:          userID,
		Company:         req.Company,
		Role:            req.Role,
		ExperienceType:  req.ExperienceType,
		GraduationYear:  req.GraduationYear,
		CompensationLPA: req.CompensationLPA,
		InterviewRounds: req.InterviewRounds,
		Verdict:         req.Verdict,
		Content:         req.Content,
		Status:          model.ExperiencePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.ExperienceRepo.InsertExperience(exp); err != nil {
		return nil, err
	}

	if s.AnalyticsRepo != nil {
		_ = s.AnalyticsRepo.UpdateDailyMetrics(now, model.MetricDeltas{ExperienceSubmissions: 1})
	}

	return exp, nil
}

func (s *ExperienceService) GetExperience(experienceID string) (*model.Experience, error) {
	return s.ExperienceRepo.GetExperience(experienceID)
}

// BrowseApproved lists approved experiences with the caller's filters.
func (s *ExperienceService) BrowseApproved(q dto.ExperienceListQuery) ([]*model.Experience, int64, error) {
	if q.Query != "" && len(q.Query) < 2 {
		return nil, 0, fmt.Errorf("%w: search query must be at least 2 characters", ErrValidation)
	}

	return s.ExperienceRepo.SearchExperiences(repository.ExperienceSearchOptions{
		Company:        q.Company,
		GraduationYear: q.GraduationYear,
		Query:          q.Query,
		Status:         model.ExperienceApproved,
		Page:           q.Page,
		PageSize:       q.PageSize,
	})
}

// PendingQueue lists experiences awaiting moderation, oldest submissions
// surfacing through pagination.
func (s *ExperienceService) PendingQueue(page, pageSize int) ([]*model.Experience, int64, error) {
	return s.ExperienceRepo.SearchExperiences(repository.ExperienceSearchOptions{
		Status:   model.ExperiencePending,
		Page:     page,
		PageSize: pageSize,
	})
}

// Moderate applies an admin decision to an experience. The audit entry is
// recorded first: a moderation that cannot be audited does not happen.
func (s *ExperienceService) Moderate(adminID, experienceID, action, reason, ipAddress, userAgent string) error {
	if adminID == "" {
		return errors.New("admin ID is required")
	}

	var status string
	var deltas model.MetricDeltas
	switch action {
	case model.ActionApproveExperience:
		status = model.ExperienceApproved
		deltas.ExperienceApprovals = 1
	case model.ActionRejectExperience:
		status = model.ExperienceRejected
		deltas.ExperienceRejections = 1
	case model.ActionFlagExperience:
		status = model.ExperienceFlagged
	default:
		return fmt.Errorf("unsupported moderation action %q", action)
	}

	exp, err := s.ExperienceRepo.GetExperience(experienceID)
	if err != nil {
		return err
	}
	if exp == nil {
		return errors.New("experience not found")
	}

	activity := &model.AdminActivity{
		AdminID:    adminID,
		Action:     action,
		TargetType: model.TargetExperience,
		TargetID:   experienceID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	}
	if reason != "" {
		activity.Details = map[string]interface{}{"reason": reason}
	}
	if err := s.ActivityRepo.RecordActivity(activity); err != nil {
		return err
	}

	if err := s.ExperienceRepo.SetModerationStatus(experienceID, status, adminID); err != nil {
		return err
	}
	utils.TrackExperienceOperation(action)

	if s.AnalyticsRepo != nil {
		now := time.Now()
		_ = s.AnalyticsRepo.UpdateDailyMetrics(now, deltas)
		if status == model.ExperienceApproved {
			s.refreshTopLists(now)
		}
	}

	return nil
}

// Delete removes an experience outright. Used for content that should not
// stay queryable even as rejected; the audit entry is recorded first.
func (s *ExperienceService) Delete(adminID, experienceID, reason, ipAddress, userAgent string) error {
	if adminID == "" {
		return errors.New("admin ID is required")
	}

	exp, err := s.ExperienceRepo.GetExperience(experienceID)
	if err != nil {
		return err
	}
	if exp == nil {
		return errors.New("experience not found")
	}

	activity := &model.AdminActivity{
		AdminID:    adminID,
		Action:     model.ActionDeleteExperience,
		TargetType: model.TargetExperience,
		TargetID:   experienceID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	}
	if reason != "" {
		activity.Details = map[string]interface{}{"reason": reason}
	}
	if err := s.ActivityRepo.RecordActivity(activity); err != nil {
		return err
	}

	if err := s.ExperienceRepo.DeleteExperience(experienceID); err != nil {
		return err
	}

	if s.AnalyticsRepo != nil && exp.Status == model.ExperienceApproved {
		s.refreshTopLists(time.Now())
	}

	return nil
}

// refreshTopLists recomputes the top-N snapshots and hands them to the
// analytics document whole. Failures only age the snapshot.
func (s *ExperienceService) refreshTopLists(now time.Time) {
	companies, err := s.ExperienceRepo.TopCompanies(topListSize)
	if err != nil {
		log.Printf("Warning: failed to compute top companies: %v", err)
		return
	}
	years, err := s.ExperienceRepo.TopGraduationYears(topListSize)
	if err != nil {
		log.Printf("Warning: failed to compute top graduation years: %v", err)
		return
	}
	if err := s.AnalyticsRepo.SetTopLists(now, companies, years); err != nil {
		log.Printf("Warning: failed to store top lists: %v", err)
	}
}
