package repository

import (
	"context"

	"vidyamitra_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Insert(ctx context.Context, q *model.Quiz) (string, error) {
	row := *q
	row.ID = ""
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return "", wrapDBErr(err)
	}
	return row.ID, nil
}

func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	return wrapDBErr(r.DB.WithContext(ctx).Save(q).Error)
}

func (r *QuizRepository) FindByIDAndUser(ctx context.Context, id string, userID uint) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&q).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return &q, nil
}

func (r *QuizRepository) ListByUser(ctx context.Context, userID uint) ([]*model.Quiz, error) {
	var qs []*model.Quiz
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&qs).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return qs, nil
}
