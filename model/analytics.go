package model

import "time"

// DailyAnalytics holds one document per UTC calendar day. Date is truncated
// to midnight and carries a unique index; counters only ever grow within a
// day because every write goes through an $inc upsert.
type DailyAnalytics struct {
	Date     time.Time `bson:"date" json:"date"`
	Counters struct {
		Registrations         int `bson:"registrations" json:"registrations"`
		ExperienceSubmissions int `bson:"experience_submissions" json:"experience_submissions"`
		ExperienceApprovals   int `bson:"experience_approvals" json:"experience_approvals"`
		ExperienceRejections  int `bson:"experience_rejections" json:"experience_rejections"`
		PageViews             int `bson:"page_views" json:"page_views"`
		Logins                int `bson:"logins" json:"logins"`
		RatingSubmissions     int `bson:"rating_submissions" json:"rating_submissions"`
	} `bson:"counters" json:"counters"`
	TopCompanies       []LabelCount `bson:"top_companies,omitempty" json:"top_companies,omitempty"`
	TopGraduationYears []LabelCount `bson:"top_graduation_years,omitempty" json:"top_graduation_years,omitempty"`
	UpdatedAt          time.Time    `bson:"updated_at" json:"updated_at"`
}

// LabelCount is one entry of a pre-aggregated top-N snapshot.
type LabelCount struct {
	Label string `bson:"label" json:"label"`
	Count int    `bson:"count" json:"count"`
}

// MetricDeltas names the counter fields a caller may increment. Zero-valued
// fields are skipped when building the update.
type MetricDeltas struct {
	Registrations         int
	ExperienceSubmissions int
	ExperienceApprovals   int
	ExperienceRejections  int
	PageViews             int
	Logins                int
	RatingSubmissions     int
}

// TruncateToDay normalizes a timestamp to its UTC midnight, the rollup key.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
