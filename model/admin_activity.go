package model

import "time"

// Admin action constants. AdminActivity entries are append-only: corrections
// are recorded as new entries, never as updates.
const (
	ActionApproveExperience = "approve_experience"
	ActionRejectExperience  = "reject_experience"
	ActionDeleteExperience  = "delete_experience"
	ActionFlagExperience    = "flag_experience"
	ActionSuspendUser       = "suspend_user"
	ActionActivateUser      = "activate_user"
	ActionDeleteUser        = "delete_user"
	ActionRevokeSessions    = "revoke_sessions"
	ActionUpdateSettings    = "update_settings"
	ActionAdminLogin        = "admin_login"
)

// Target type constants
const (
	TargetExperience = "experience"
	TargetUser       = "user"
	TargetSystem     = "system"
)

type AdminActivity struct {
	AdminID    string                 `bson:"admin_id" json:"admin_id"`
	Action     string                 `bson:"action" json:"action"`
	TargetType string                 `bson:"target_type" json:"target_type"`
	TargetID   string                 `bson:"target_id" json:"target_id"`
	Details    map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress  string                 `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt  time.Time              `bson:"created_at" json:"created_at"`
}

var adminActions = map[string]bool{
	ActionApproveExperience: true,
	ActionRejectExperience:  true,
	ActionDeleteExperience:  true,
	ActionFlagExperience:    true,
	ActionSuspendUser:       true,
	ActionActivateUser:      true,
	ActionDeleteUser:        true,
	ActionRevokeSessions:    true,
	ActionUpdateSettings:    true,
	ActionAdminLogin:        true,
}

var targetTypes = map[string]bool{
	TargetExperience: true,
	TargetUser:       true,
	TargetSystem:     true,
}

// IsValidAdminAction reports whether action belongs to the closed action set.
func IsValidAdminAction(action string) bool {
	return adminActions[action]
}

// IsValidTargetType reports whether targetType is one of experience/user/system.
func IsValidTargetType(targetType string) bool {
	return targetTypes[targetType]
}
