package repository

import (
	"context"

	"vidyamitra_backend/internal/model"

	"gorm.io/gorm"
)

type SavedJobRepository struct {
	DB *gorm.DB
}

func NewSavedJobRepository(db *gorm.DB) *SavedJobRepository {
	return &SavedJobRepository{DB: db}
}

func (r *SavedJobRepository) Create(ctx context.Context, j *model.SavedJob) error {
	return wrapDBErr(r.DB.WithContext(ctx).Create(j).Error)
}

func (r *SavedJobRepository) ListByUser(ctx context.Context, userID uint) ([]*model.SavedJob, error) {
	var js []*model.SavedJob
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&js).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return js, nil
}
