package repository

import (
	"context"

	"vidyamitra_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{DB: db}
}

// Insert writes a copy of the session and returns the id the database issued
// for it. The caller's record is left untouched so a failed insert cannot
// corrupt the in-memory copy.
func (r *InterviewRepository) Insert(ctx context.Context, s *model.InterviewSession) (string, error) {
	row := *s
	row.ID = ""
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return "", wrapDBErr(err)
	}
	return row.ID, nil
}

func (r *InterviewRepository) Update(ctx context.Context, s *model.InterviewSession) error {
	return wrapDBErr(r.DB.WithContext(ctx).Save(s).Error)
}

func (r *InterviewRepository) FindByIDAndUser(ctx context.Context, id string, userID uint) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return &s, nil
}

func (r *InterviewRepository) ListByUser(ctx context.Context, userID uint) ([]*model.InterviewSession, error) {
	var ss []*model.InterviewSession
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&ss).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return ss, nil
}
