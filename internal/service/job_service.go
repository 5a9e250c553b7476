package service

import (
	"context"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
)

// JobService bookmarks job postings. Match scores are supplied by the caller
// and flow into the dashboard's job-market alignment metric.
type JobService struct {
	jobRepo *repository.SavedJobRepository
}

func NewJobService(jobRepo *repository.SavedJobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

func (s *JobService) Save(ctx context.Context, userID uint, jobTitle, companyName, jobURL string, matchScore *int) (*model.SavedJob, error) {
	job := &model.SavedJob{
		UserID:      userID,
		JobTitle:    jobTitle,
		CompanyName: companyName,
		JobURL:      jobURL,
		MatchScore:  matchScore,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Saved(ctx context.Context, userID uint) ([]*model.SavedJob, error) {
	return s.jobRepo.ListByUser(ctx, userID)
}
