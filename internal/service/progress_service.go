package service

import (
	"context"
	"math"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/pkg/monitoring"
)

// ProgressService aggregates every module into one readiness report for the
// dashboard.
type ProgressService struct {
	quizStore      *store.SessionStore[*model.Quiz]
	interviewStore *store.SessionStore[*model.InterviewSession]
	jobRepo        *repository.SavedJobRepository
	planRepo       *repository.TrainingPlanRepository
}

func NewProgressService(
	quizStore *store.SessionStore[*model.Quiz],
	interviewStore *store.SessionStore[*model.InterviewSession],
	jobRepo *repository.SavedJobRepository,
	planRepo *repository.TrainingPlanRepository,
) *ProgressService {
	return &ProgressService{
		quizStore:      quizStore,
		interviewStore: interviewStore,
		jobRepo:        jobRepo,
		planRepo:       planRepo,
	}
}

type DashboardMetrics struct {
	OverallReadinessScore float64 `json:"overall_readiness_score"`
	KnowledgeScore        float64 `json:"knowledge_score"`
	CommunicationScore    float64 `json:"communication_score"`
	JobMarketAlignment    float64 `json:"job_market_alignment"`
}

type ActivityCounts struct {
	QuizzesCompleted    int `json:"quizzes_completed"`
	InterviewsCompleted int `json:"interviews_completed"`
	JobsBookmarked      int `json:"jobs_bookmarked"`
}

type Dashboard struct {
	TargetRole     string           `json:"target_role"`
	Metrics        DashboardMetrics `json:"metrics"`
	ActivityCounts ActivityCounts   `json:"activity_counts"`
}

// Dashboard computes the readiness report. All three component averages live
// on a 0-100 scale. Quizzes contribute their mean score with a floor of 1 so
// the active-assessment branch below always sees quiz activity as non-zero;
// interviews contribute the mean overall score scaled out of 100, skipping
// sessions scored zero; saved jobs contribute the mean match score. Readiness
// weights the components 40/40/20, where the 40% "active assessments" slice is
// the quiz/interview mean when both are non-zero and the surviving one
// otherwise. Scores are rounded to one decimal for display only.
func (s *ProgressService) Dashboard(ctx context.Context, userID uint) *Dashboard {
	quizScores := 0.0
	quizCount := 0
	for _, q := range s.quizStore.History(ctx, userID) {
		if q.Status == model.QuizStatusCompleted && q.ScorePercentage != nil {
			quizScores += *q.ScorePercentage
			quizCount++
		}
	}
	avgQuiz := 1.0
	if quizCount > 0 {
		avgQuiz = quizScores / float64(quizCount)
	}

	interviewScores := 0.0
	interviewCount := 0
	for _, session := range s.interviewStore.History(ctx, userID) {
		if session.Status != model.InterviewStatusCompleted || session.Evaluation == nil {
			continue
		}
		if score := session.Evaluation.DashboardSummary.OverallScoreOutOf10; score != 0 {
			interviewScores += score * 10
			interviewCount++
		}
	}
	avgInterview := 0.0
	if interviewCount > 0 {
		avgInterview = interviewScores / float64(interviewCount)
	}

	jobScores := 0.0
	jobCount := 0
	if jobs, err := s.jobRepo.ListByUser(ctx, userID); err == nil {
		for _, j := range jobs {
			if j.MatchScore != nil {
				jobScores += float64(*j.MatchScore)
				jobCount++
			}
		}
	}
	avgJobMatch := 0.0
	if jobCount > 0 {
		avgJobMatch = jobScores / float64(jobCount)
	}

	activeAssessments := avgQuiz
	switch {
	case avgQuiz != 0 && avgInterview != 0:
		activeAssessments = (avgQuiz + avgInterview) / 2
	case avgInterview != 0:
		activeAssessments = avgInterview
	}

	readiness := activeAssessments*0.40 + avgInterview*0.40 + avgJobMatch*0.20

	targetRole := ""
	if plan, err := s.planRepo.LatestByUser(ctx, userID); err == nil {
		targetRole = plan.TargetRole
	}

	monitoring.ReadinessComputations.Inc()

	return &Dashboard{
		TargetRole: targetRole,
		Metrics: DashboardMetrics{
			OverallReadinessScore: round1(readiness),
			KnowledgeScore:        round1(avgQuiz),
			CommunicationScore:    round1(avgInterview),
			JobMarketAlignment:    round1(avgJobMatch),
		},
		ActivityCounts: ActivityCounts{
			QuizzesCompleted:    quizCount,
			InterviewsCompleted: interviewCount,
			JobsBookmarked:      jobCount,
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
