package dto

type SubmitExperienceRequest struct {
	Company         string  `json:"company" binding:"required,max=100"`
	Role            string  `json:"role" binding:"required,max=100"`
	ExperienceType  string  `json:"experience_type" binding:"required,oneof=placement internship"`
	GraduationYear  int     `json:"graduation_year" binding:"required,gradyear"`
	CompensationLPA float64 `json:"compensation_lpa" binding:"omitempty,gte=0"`
	InterviewRounds int     `json:"interview_rounds" binding:"omitempty,gte=0,lte=20"`
	Verdict         string  `json:"verdict" binding:"omitempty,oneof=selected rejected"`
	Content         string  `json:"content" binding:"required,min=50,max=20000"`
}

type ModerateExperienceRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type ExperienceListQuery struct {
	Company        string `form:"company"`
	GraduationYear int    `form:"graduation_year"`
	Query          string `form:"q"`
	Page           int    `form:"page,default=1"`
	PageSize       int    `form:"page_size,default=20"`
}
