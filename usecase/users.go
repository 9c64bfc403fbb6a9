package usecase

import (
	"context"
	"errors"
	"time"

	"placedin/dto"
	"placedin/model"
	"placedin/repository"
	"placedin/services"
	"placedin/utils"
)

type UserService struct {
	UsersRepo     *repository.UserRepo
	SessionRepo   *repository.SessionRepo
	AnalyticsRepo *repository.AnalyticsRepo
}

// Register creates a student account with a hashed password and bumps the
// day's registration counter.
func (s *UserService) Register(ctx context.Context, req *dto.RegistrationRequest) (*model.User, error) {
	existing, err := s.UsersRepo.FindUserByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("username already taken")
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:         utils.GenerateID(),
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashed,
		Role:           model.RoleStudent,
		GraduationYear: req.GraduationYear,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}

	if err := s.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}

	if s.AnalyticsRepo != nil {
		_ = s.AnalyticsRepo.UpdateDailyMetrics(time.Now(), model.MetricDeltas{Registrations: 1})
	}

	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.UsersRepo.FindUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	match, err := services.VerifyPassword(user.Password, currentPassword)
	if err != nil || !match {
		return errors.New("current password is incorrect")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return err
	}

	modified, err := s.UsersRepo.UpdateUserPassword(userID, hashed)
	if err != nil {
		return err
	}
	if modified == 0 {
		return errors.New("password unchanged")
	}

	// A password change revokes every session issued under the old
	// credential.
	if s.SessionRepo != nil {
		if err := s.SessionRepo.EndAllUserSessions(userID); err != nil {
			return err
		}
	}

	return nil
}

func (s *UserService) FindUserByUsername(username string) (*model.User, error) {
	return s.UsersRepo.FindUserByUsername(username)
}

func (s *UserService) FindUser(userID string) (*model.User, error) {
	return s.UsersRepo.FindUser(userID)
}
