package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const milestonesPayload = `{
  "milestones": [
    {"title": "Learn Go fundamentals", "description": "Syntax, tooling, testing.", "duration": "3 weeks"},
    {"title": "Build a REST service", "description": "Routing, persistence, deployment.", "duration": "4 weeks"},
    {"title": "Ship a side project", "description": "End to end, with CI.", "duration": "5 weeks"}
  ]
}`

func newRoadmapService(t *testing.T) *RoadmapService {
	t.Helper()
	ai := newAIRouterStub(t, func(prompt string) (string, int) {
		return milestonesPayload, http.StatusOK
	})
	st := store.NewSessionStore[*model.Roadmap]("roadmap", nil)
	enrichment := NewEnrichmentService(testEnrichmentConfig(), nil)
	return NewRoadmapService(st, ai, newResumeRepo(t), enrichment)
}

func TestRoadmapGenerate(t *testing.T) {
	svc := newRoadmapService(t)

	roadmap, err := svc.Generate(context.Background(), 1, "Become a Go developer", 6)
	require.NoError(t, err)

	assert.Equal(t, model.RoadmapStatusReady, roadmap.Status)
	assert.Equal(t, 6, roadmap.TimelineMonths)
	require.Len(t, roadmap.Milestones, 3)

	// The first milestone starts current, the rest upcoming.
	assert.Equal(t, model.MilestoneStatusCurrent, roadmap.Milestones[0].Status)
	assert.Equal(t, model.MilestoneStatusUpcoming, roadmap.Milestones[1].Status)
	assert.Equal(t, model.MilestoneStatusUpcoming, roadmap.Milestones[2].Status)
	for _, m := range roadmap.Milestones {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Title)
	}
}

func TestRoadmapGenerateDefaultTimeline(t *testing.T) {
	svc := newRoadmapService(t)

	roadmap, err := svc.Generate(context.Background(), 1, "Become a Go developer", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultRoadmapTimelineMonths, roadmap.TimelineMonths)
}

func TestRoadmapGenerateEmptyGoal(t *testing.T) {
	svc := newRoadmapService(t)

	roadmap, err := svc.Generate(context.Background(), 1, "", 6)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(roadmap.Goal, "Become a "), "goal derived from the auto-fill chain, got %q", roadmap.Goal)
}

func TestRoadmapGenerateFailure(t *testing.T) {
	ai := newAIRouterStub(t, func(string) (string, int) {
		return "overloaded", http.StatusServiceUnavailable
	})
	st := store.NewSessionStore[*model.Roadmap]("roadmap", nil)
	svc := NewRoadmapService(st, ai, newResumeRepo(t), NewEnrichmentService(testEnrichmentConfig(), nil))

	_, err := svc.Generate(context.Background(), 1, "goal", 6)
	assert.ErrorIs(t, err, util.ErrGenerationFailed)

	// Nothing is stored for a failed generation.
	assert.Empty(t, svc.History(context.Background(), 1))
}

func TestRoadmapHistory(t *testing.T) {
	svc := newRoadmapService(t)

	_, err := svc.Generate(context.Background(), 1, "goal one", 6)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), 2, "other user", 6)
	require.NoError(t, err)

	history := svc.History(context.Background(), 1)
	require.Len(t, history, 1)
	assert.Equal(t, "goal one", history[0].Goal)
}
