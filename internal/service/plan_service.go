package service

import (
	"context"
	"fmt"
	"strings"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/util"
)

// PlanService produces free-form training plans: prose study roadmaps for a
// target role and its skill gaps, as opposed to the structured milestone
// roadmaps RoadmapService builds. Plans are written straight to the durable
// store; they have no session lifecycle.
type PlanService struct {
	ai         *AIService
	planRepo   *repository.TrainingPlanRepository
	resumeRepo *repository.ResumeEvaluationRepository
	enrichment *EnrichmentService
}

func NewPlanService(ai *AIService, planRepo *repository.TrainingPlanRepository, resumeRepo *repository.ResumeEvaluationRepository, enrichment *EnrichmentService) *PlanService {
	return &PlanService{ai: ai, planRepo: planRepo, resumeRepo: resumeRepo, enrichment: enrichment}
}

// Generate writes a training plan for the role. An empty role or gap list is
// filled from the user's latest resume analysis before generation.
func (s *PlanService) Generate(ctx context.Context, userID uint, targetRole string, skillGaps []string) (*model.TrainingPlan, error) {
	role := resolveTargetRole(ctx, s.resumeRepo, targetRole, userID)

	gaps := make([]string, 0, len(skillGaps))
	for _, g := range skillGaps {
		if strings.TrimSpace(g) != "" {
			gaps = append(gaps, strings.TrimSpace(g))
		}
	}
	if len(gaps) == 0 {
		if eval, err := s.resumeRepo.LatestByUser(ctx, userID); err == nil {
			gaps = eval.Analysis.SkillGaps
		}
	}

	systemPrompt := "You are a career coach writing a personal training plan in Markdown."
	prompt := fmt.Sprintf(
		`Write a week-by-week training plan for someone targeting the role of %q.`, role)
	if len(gaps) > 0 {
		prompt += fmt.Sprintf(" Focus on closing these skill gaps: %s.", strings.Join(gaps, ", "))
	}
	prompt += " Use Markdown headings per week with concrete study tasks and practice exercises."

	text, err := s.ai.Chat(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}

	plan := &model.TrainingPlan{
		UserID:            userID,
		TargetRole:        role,
		SkillGaps:         gaps,
		Roadmap:           text,
		RecommendedVideos: s.enrichment.SearchVideos(ctx, role),
		DashboardImageURL: s.enrichment.SearchImage(ctx, role),
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// History lists the user's training plans, newest first.
func (s *PlanService) History(ctx context.Context, userID uint) ([]*model.TrainingPlan, error) {
	return s.planRepo.ListByUser(ctx, userID)
}
