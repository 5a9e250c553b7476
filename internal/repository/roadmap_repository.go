package repository

import (
	"context"

	"vidyamitra_backend/internal/model"

	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

func (r *RoadmapRepository) Insert(ctx context.Context, m *model.Roadmap) (string, error) {
	row := *m
	row.ID = ""
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return "", wrapDBErr(err)
	}
	return row.ID, nil
}

func (r *RoadmapRepository) Update(ctx context.Context, m *model.Roadmap) error {
	return wrapDBErr(r.DB.WithContext(ctx).Save(m).Error)
}

func (r *RoadmapRepository) FindByIDAndUser(ctx context.Context, id string, userID uint) (*model.Roadmap, error) {
	var m model.Roadmap
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return &m, nil
}

func (r *RoadmapRepository) ListByUser(ctx context.Context, userID uint) ([]*model.Roadmap, error) {
	var ms []*model.Roadmap
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&ms).Error
	if err != nil {
		return nil, wrapDBErr(err)
	}
	return ms, nil
}
