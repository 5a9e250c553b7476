package model

// swagger:model
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(191);not null" json:"-"`
}
