package model

// swagger:model
type SavedJob struct {
	UUIDBase
	UserID      uint   `gorm:"index;not null" json:"userId"`
	JobTitle    string `gorm:"type:varchar(191)" json:"jobTitle"`
	CompanyName string `gorm:"type:varchar(191)" json:"companyName"`
	JobURL      string `gorm:"type:varchar(512)" json:"jobUrl"`
	MatchScore  *int   `json:"matchScore,omitempty"`
}
