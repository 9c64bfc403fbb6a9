package model

import "time"

// Experience moderation states
const (
	ExperiencePending  = "pending"
	ExperienceApproved = "approved"
	ExperienceRejected = "rejected"
	ExperienceFlagged  = "flagged"
)

type Experience struct {
	ExperienceID    string    `bson:"experience_id" json:"experience_id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Company         string    `bson:"company" json:"company"`
	Role            string    `bson:"role" json:"role"`
	ExperienceType  string    `bson:"experience_type" json:"experience_type"` // placement or internship
	GraduationYear  int       `bson:"graduation_year" json:"graduation_year"`
	CompensationLPA float64   `bson:"compensation_lpa,omitempty" json:"compensation_lpa,omitempty"`
	InterviewRounds int       `bson:"interview_rounds,omitempty" json:"interview_rounds,omitempty"`
	Verdict         string    `bson:"verdict,omitempty" json:"verdict,omitempty"` // selected or rejected
	Content         string    `bson:"content" json:"content"`
	Status          string    `bson:"status" json:"status"`
	ModeratedBy     string    `bson:"moderated_by,omitempty" json:"moderated_by,omitempty"`
	ModeratedAt     time.Time `bson:"moderated_at,omitempty" json:"moderated_at,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
