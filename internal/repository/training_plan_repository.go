package repository

import (
	"context"

	"vidyamitra_backend/internal/model"

	"gorm.io/gorm"
)

type TrainingPlanRepository struct {
	DB *gorm.DB
}

func NewTrainingPlanRepository(db *gorm.DB) *TrainingPlanRepository {
	return &TrainingPlanRepository{DB: db}
}

func (r *TrainingPlanRepository) Create(ctx context.Context, p *model.TrainingPlan) error {
	return wrapDBErr(r.DB.WithContext(ctx).Create(p).Error)
}

// LatestByUser returns the newest plan; the dashboard reads the target role
// from it.
func (r *TrainingPlanRepository) LatestByUser(ctx context.Context, userID uint) (*model.TrainingPlan, error) {
	var p model.TrainingPlan
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").First(&p).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return &p, nil
}

func (r *TrainingPlanRepository) ListByUser(ctx context.Context, userID uint) ([]*model.TrainingPlan, error) {
	var ps []*model.TrainingPlan
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&ps).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return ps, nil
}
