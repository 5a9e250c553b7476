package model

// ResumeAnalysis is the structured output of the resume analyzer. The
// evaluated (or top recommended) role and the skill gaps feed the auto-fill
// chain used by interviews, roadmaps and training plans.
type ResumeAnalysis struct {
	Strengths           []string `json:"strengths"`
	TargetRoleEvaluated string   `json:"target_role_evaluated"`
	SuggestedRoles      []string `json:"suggested_roles"`
	SkillGaps           []string `json:"skill_gaps"`
}

// swagger:model
type ResumeEvaluation struct {
	UUIDBase
	UserID   uint           `gorm:"index;not null" json:"userId"`
	Filename string         `gorm:"type:varchar(255)" json:"filename"`
	FileURL  string         `gorm:"type:varchar(512)" json:"fileUrl,omitempty"`
	Analysis ResumeAnalysis `gorm:"serializer:json" json:"analysisResult"`
}
