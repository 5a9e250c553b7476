package service

import (
	"context"
	"testing"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type progressFixture struct {
	svc            *ProgressService
	quizStore      *store.SessionStore[*model.Quiz]
	interviewStore *store.SessionStore[*model.InterviewSession]
	jobRepo        *repository.SavedJobRepository
	planRepo       *repository.TrainingPlanRepository
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SavedJob{}, &model.TrainingPlan{}))

	f := &progressFixture{
		quizStore:      store.NewSessionStore[*model.Quiz]("quiz", nil),
		interviewStore: store.NewSessionStore[*model.InterviewSession]("interview", nil),
		jobRepo:        repository.NewSavedJobRepository(db),
		planRepo:       repository.NewTrainingPlanRepository(db),
	}
	f.svc = NewProgressService(f.quizStore, f.interviewStore, f.jobRepo, f.planRepo)
	return f
}

func (f *progressFixture) addQuiz(userID uint, score float64) {
	f.quizStore.Create(context.Background(), &model.Quiz{
		UserID:          userID,
		Topic:           "t",
		ScorePercentage: &score,
		Status:          model.QuizStatusCompleted,
	})
}

func (f *progressFixture) addInterview(userID uint, overallScore float64) {
	f.interviewStore.Create(context.Background(), &model.InterviewSession{
		UserID: userID,
		Status: model.InterviewStatusCompleted,
		Evaluation: &model.InterviewEvaluation{
			DashboardSummary: model.DashboardSummary{OverallScoreOutOf10: overallScore},
		},
	})
}

func (f *progressFixture) addJob(t *testing.T, userID uint, matchScore int) {
	t.Helper()
	require.NoError(t, f.jobRepo.Create(context.Background(), &model.SavedJob{
		UserID:     userID,
		JobTitle:   "j",
		MatchScore: &matchScore,
	}))
}

func TestDashboardNoActivity(t *testing.T) {
	f := newProgressFixture(t)

	d := f.svc.Dashboard(context.Background(), 1)

	// The quiz floor of 1 is the only signal.
	assert.Equal(t, 1.0, d.Metrics.KnowledgeScore)
	assert.Equal(t, 0.0, d.Metrics.CommunicationScore)
	assert.Equal(t, 0.0, d.Metrics.JobMarketAlignment)
	assert.Equal(t, 0.4, d.Metrics.OverallReadinessScore)
	assert.Equal(t, 0, d.ActivityCounts.QuizzesCompleted)
}

func TestDashboardQuizzesOnly(t *testing.T) {
	f := newProgressFixture(t)
	f.addQuiz(1, 80)
	f.addQuiz(1, 60)

	d := f.svc.Dashboard(context.Background(), 1)

	assert.Equal(t, 70.0, d.Metrics.KnowledgeScore)
	// active assessments = 70 (no interview signal), readiness = 70*0.4.
	assert.Equal(t, 28.0, d.Metrics.OverallReadinessScore)
	assert.Equal(t, 2, d.ActivityCounts.QuizzesCompleted)
}

func TestDashboardQuizzesAndInterviews(t *testing.T) {
	f := newProgressFixture(t)
	f.addQuiz(1, 80)
	f.addInterview(1, 7.5)

	d := f.svc.Dashboard(context.Background(), 1)

	assert.Equal(t, 80.0, d.Metrics.KnowledgeScore)
	assert.Equal(t, 75.0, d.Metrics.CommunicationScore)
	// active = (80+75)/2 = 77.5; readiness = 77.5*0.4 + 75*0.4 = 61.0.
	assert.Equal(t, 61.0, d.Metrics.OverallReadinessScore)
}

func TestDashboardInterviewOnlyStillSeesQuizFloor(t *testing.T) {
	f := newProgressFixture(t)
	f.addInterview(1, 7.5)

	d := f.svc.Dashboard(context.Background(), 1)

	// The empty quiz history floors at 1, so the active slice averages it in:
	// active = (1+75)/2 = 38; readiness = 38*0.4 + 75*0.4 = 45.2.
	assert.Equal(t, 1.0, d.Metrics.KnowledgeScore)
	assert.Equal(t, 45.2, d.Metrics.OverallReadinessScore)
}

func TestDashboardZeroScoredInterviewsSkipped(t *testing.T) {
	f := newProgressFixture(t)
	f.addInterview(1, 0)
	f.addInterview(1, 8)

	d := f.svc.Dashboard(context.Background(), 1)

	assert.Equal(t, 80.0, d.Metrics.CommunicationScore)
	assert.Equal(t, 1, d.ActivityCounts.InterviewsCompleted)
}

func TestDashboardJobMatches(t *testing.T) {
	f := newProgressFixture(t)
	f.addJob(t, 1, 90)
	f.addJob(t, 1, 70)

	d := f.svc.Dashboard(context.Background(), 1)

	assert.Equal(t, 80.0, d.Metrics.JobMarketAlignment)
	// active = 1 (quiz floor), readiness = 1*0.4 + 0 + 80*0.2 = 16.4.
	assert.Equal(t, 16.4, d.Metrics.OverallReadinessScore)
	assert.Equal(t, 2, d.ActivityCounts.JobsBookmarked)
}

func TestDashboardPendingQuizzesExcluded(t *testing.T) {
	f := newProgressFixture(t)
	f.addQuiz(1, 100)
	f.quizStore.Create(context.Background(), &model.Quiz{
		UserID: 1,
		Topic:  "pending",
		Status: model.QuizStatusPending,
	})

	d := f.svc.Dashboard(context.Background(), 1)

	assert.Equal(t, 100.0, d.Metrics.KnowledgeScore)
	assert.Equal(t, 1, d.ActivityCounts.QuizzesCompleted)
}

func TestDashboardTargetRoleFromLatestPlan(t *testing.T) {
	f := newProgressFixture(t)
	require.NoError(t, f.planRepo.Create(context.Background(), &model.TrainingPlan{
		UserID:     1,
		TargetRole: "Backend Engineer",
	}))

	d := f.svc.Dashboard(context.Background(), 1)
	assert.Equal(t, "Backend Engineer", d.TargetRole)
}

func TestDashboardIsolatedPerUser(t *testing.T) {
	f := newProgressFixture(t)
	f.addQuiz(1, 100)
	f.addQuiz(2, 10)

	d := f.svc.Dashboard(context.Background(), 1)
	assert.Equal(t, 100.0, d.Metrics.KnowledgeScore)
}
