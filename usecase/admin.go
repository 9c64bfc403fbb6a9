package usecase

import (
	"errors"
	"time"

	"placedin/model"
	"placedin/repository"
)

type AdminService struct {
	UsersRepo    *repository.UserRepo
	SessionRepo  *repository.SessionRepo
	ActivityRepo *repository.AdminActivityRepo
}

// SetUserStatus suspends or reactivates a user account. Suspension also
// revokes every session the user holds so access ends immediately.
func (s *AdminService) SetUserStatus(adminID, userID string, active bool, reason, ipAddress, userAgent string) error {
	if adminID == "" || userID == "" {
		return errors.New("admin ID and user ID are required")
	}

	user, err := s.UsersRepo.FindUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	action := model.ActionSuspendUser
	if active {
		action = model.ActionActivateUser
	}

	activity := &model.AdminActivity{
		AdminID:    adminID,
		Action:     action,
		TargetType: model.TargetUser,
		TargetID:   userID,
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

	if err := s.UsersRepo.SetUserActive(userID, active); err != nil {
		return err
	}

	if !active {
		if err := s.SessionRepo.EndAllUserSessions(userID); err != nil {
			return err
		}
		revocation := &model.AdminActivity{
			AdminID:    adminID,
			Action:     model.ActionRevokeSessions,
			TargetType: model.TargetUser,
			TargetID:   userID,
			IPAddress:  ipAddress,
			UserAgent:  userAgent,
			CreatedAt:  time.Now(),
		}
		if err := s.ActivityRepo.RecordActivity(revocation); err != nil {
			return err
		}
	}

	return nil
}

// DeleteUser removes a user account entirely. Sessions are revoked first and
// the deletion lands in the audit trail before anything is removed.
func (s *AdminService) DeleteUser(adminID, userID, reason, ipAddress, userAgent string) error {
	if adminID == "" || userID == "" {
		return errors.New("admin ID and user ID are required")
	}

	user, err := s.UsersRepo.FindUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	activity := &model.AdminActivity{
		AdminID:    adminID,
		Action:     model.ActionDeleteUser,
		TargetType: model.TargetUser,
		TargetID:   userID,
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

	if err := s.SessionRepo.EndAllUserSessions(userID); err != nil {
		return err
	}

	deleted, err := s.UsersRepo.DeleteUserByID(userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.New("user not found")
	}

	return nil
}
