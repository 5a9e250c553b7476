package service

import (
	"context"
	"fmt"
	"strings"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/store"
)

const defaultRoadmapTimelineMonths = 6

type RoadmapService struct {
	store      *store.SessionStore[*model.Roadmap]
	ai         *AIService
	resumeRepo *repository.ResumeEvaluationRepository
	enrichment *EnrichmentService
}

func NewRoadmapService(st *store.SessionStore[*model.Roadmap], ai *AIService, resumeRepo *repository.ResumeEvaluationRepository, enrichment *EnrichmentService) *RoadmapService {
	return &RoadmapService{store: st, ai: ai, resumeRepo: resumeRepo, enrichment: enrichment}
}

type generatedMilestones struct {
	Milestones []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Duration    string `json:"duration"`
	} `json:"milestones"`
}

func (g *generatedMilestones) Validate() error {
	if len(g.Milestones) == 0 {
		return fmt.Errorf("no milestones returned")
	}
	for i, m := range g.Milestones {
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("milestone %d has empty title", i)
		}
	}
	return nil
}

// Generate builds a milestone roadmap for the goal and stores it fully
// populated. An empty goal is derived from the user's latest resume analysis,
// the same way an interview role is. Roadmaps have no lifecycle: they are
// created ready and never change state.
func (s *RoadmapService) Generate(ctx context.Context, userID uint, goal string, timelineMonths int) (*model.Roadmap, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		goal = "Become a " + resolveTargetRole(ctx, s.resumeRepo, "", userID)
	}
	if timelineMonths <= 0 {
		timelineMonths = defaultRoadmapTimelineMonths
	}

	systemPrompt := "You are a career coach planning a learning path. Respond with JSON only, no prose."
	prompt := fmt.Sprintf(
		`Create a step-by-step career roadmap for the goal %q over %d months. `+
			`Give 4 to 8 milestones, each with a title, a two-sentence description and a duration such as "3 weeks". `+
			`Return JSON of the form {"milestones": [{"title": "...", "description": "...", "duration": "..."}]}.`,
		goal, timelineMonths)

	var generated generatedMilestones
	if err := s.ai.GenerateJSON(ctx, "roadmap", systemPrompt, prompt, &generated); err != nil {
		return nil, err
	}

	milestones := make([]model.Milestone, 0, len(generated.Milestones))
	for i, m := range generated.Milestones {
		status := model.MilestoneStatusUpcoming
		if i == 0 {
			status = model.MilestoneStatusCurrent
		}
		milestones = append(milestones, model.Milestone{
			ID:          model.GenerateUUID(),
			Title:       m.Title,
			Description: m.Description,
			Duration:    m.Duration,
			Status:      status,
		})
	}

	roadmap := &model.Roadmap{
		UserID:            userID,
		Goal:              goal,
		TimelineMonths:    timelineMonths,
		Milestones:        milestones,
		RecommendedVideos: s.enrichment.SearchVideos(ctx, goal+" "+milestones[0].Title),
		DashboardImageURL: s.enrichment.SearchImage(ctx, goal),
		Status:            model.RoadmapStatusReady,
	}
	s.store.Create(ctx, roadmap)

	return roadmap, nil
}

// History lists the user's roadmaps, newest first.
func (s *RoadmapService) History(ctx context.Context, userID uint) []*model.Roadmap {
	return s.store.History(ctx, userID)
}
