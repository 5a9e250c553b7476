package model

// swagger:model
type TrainingPlan struct {
	UUIDBase
	UserID            uint               `gorm:"index;not null" json:"userId"`
	TargetRole        string             `gorm:"type:varchar(191)" json:"targetRole"`
	SkillGaps         []string           `gorm:"serializer:json" json:"skillGaps"`
	Roadmap           string             `gorm:"type:text" json:"roadmap"`
	RecommendedVideos []RecommendedVideo `gorm:"serializer:json" json:"recommendedVideos"`
	DashboardImageURL string             `gorm:"type:varchar(512)" json:"dashboardImageUrl,omitempty"`
}
