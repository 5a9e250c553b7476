package repository

import (
	"context"

	"vidyamitra_backend/internal/model"

	"gorm.io/gorm"
)

type ResumeEvaluationRepository struct {
	DB *gorm.DB
}

func NewResumeEvaluationRepository(db *gorm.DB) *ResumeEvaluationRepository {
	return &ResumeEvaluationRepository{DB: db}
}

func (r *ResumeEvaluationRepository) Create(ctx context.Context, e *model.ResumeEvaluation) error {
	return wrapDBErr(r.DB.WithContext(ctx).Create(e).Error)
}

// LatestByUser returns the most recent evaluation for the auto-fill chain.
func (r *ResumeEvaluationRepository) LatestByUser(ctx context.Context, userID uint) (*model.ResumeEvaluation, error) {
	var e model.ResumeEvaluation
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").First(&e).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return &e, nil
}

func (r *ResumeEvaluationRepository) ListByUser(ctx context.Context, userID uint) ([]*model.ResumeEvaluation, error) {
	var es []*model.ResumeEvaluation
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&es).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return es, nil
}
