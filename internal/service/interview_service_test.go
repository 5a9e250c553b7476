package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newAIRouterStub lets each test answer differently per prompt, which the
// evaluation flow needs: one payload for questions, one per answer, one for
// the summary.
func newAIRouterStub(t *testing.T, respond func(prompt string) (string, int)) *AIService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt := req.Messages[len(req.Messages)-1].Content

		content, status := respond(prompt)
		if status != http.StatusOK {
			http.Error(w, content, status)
			return
		}

		resp := ChatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message AIChatMessage `json:"message"`
		}{Message: AIChatMessage{Role: "assistant", Content: content}})
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
}

const questionsPayload = `{"questions": ["Tell me about yourself.", "Why this role?", "Describe a conflict you resolved.", "What is your biggest weakness?", "Where do you see yourself in five years?"]}`

func interviewRouter(prompt string) (string, int) {
	switch {
	case strings.Contains(prompt, "interview questions"):
		return questionsPayload, http.StatusOK
	case strings.Contains(prompt, "Summarize the whole interview"):
		return `{"overall_score_out_of_10": 7.5, "key_strengths": ["clear communication"], "areas_for_improvement": ["more detail"], "final_verdict": "Promising candidate."}`, http.StatusOK
	default:
		return `{"scores": {"tone": 8, "confidence": 7, "accuracy": 6}, "feedback": "Solid answer."}`, http.StatusOK
	}
}

func newResumeRepo(t *testing.T) *repository.ResumeEvaluationRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ResumeEvaluation{}))
	return repository.NewResumeEvaluationRepository(db)
}

func newInterviewService(t *testing.T, respond func(string) (string, int)) *InterviewService {
	t.Helper()
	ai := newAIRouterStub(t, respond)
	st := store.NewSessionStore[*model.InterviewSession]("interview", nil)
	return NewInterviewService(st, ai, newResumeRepo(t))
}

func answersFor(session *model.InterviewSession) []model.InterviewAnswer {
	answers := make([]model.InterviewAnswer, 0, len(session.Questions))
	for _, q := range session.Questions {
		answers = append(answers, model.InterviewAnswer{QuestionID: q.ID, AnswerText: "My answer to: " + q.Text})
	}
	return answers
}

func TestInterviewStart(t *testing.T) {
	svc := newInterviewService(t, interviewRouter)

	session, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", session.TargetRole)
	assert.Equal(t, model.InterviewStatusInProgress, session.Status)
	require.Len(t, session.Questions, 5)
	for _, q := range session.Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Text)
	}
}

func TestInterviewStartDefaultRole(t *testing.T) {
	svc := newInterviewService(t, interviewRouter)

	session, err := svc.Start(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTargetRole, session.TargetRole)
}

func TestInterviewStartRoleFromResume(t *testing.T) {
	repo := newResumeRepo(t)
	require.NoError(t, repo.Create(context.Background(), &model.ResumeEvaluation{
		UserID: 1,
		Analysis: model.ResumeAnalysis{
			TargetRoleEvaluated: "Data Engineer",
			SuggestedRoles:      []string{"Analytics Engineer"},
		},
	}))

	ai := newAIRouterStub(t, interviewRouter)
	svc := NewInterviewService(store.NewSessionStore[*model.InterviewSession]("interview", nil), ai, repo)

	session, err := svc.Start(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", session.TargetRole)
}

func TestInterviewStartRoleFromSuggestions(t *testing.T) {
	repo := newResumeRepo(t)
	require.NoError(t, repo.Create(context.Background(), &model.ResumeEvaluation{
		UserID: 1,
		Analysis: model.ResumeAnalysis{
			SuggestedRoles: []string{"Analytics Engineer", "Data Analyst"},
		},
	}))

	ai := newAIRouterStub(t, interviewRouter)
	svc := NewInterviewService(store.NewSessionStore[*model.InterviewSession]("interview", nil), ai, repo)

	session, err := svc.Start(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Analytics Engineer", session.TargetRole)
}

func TestInterviewStartGenerationFailure(t *testing.T) {
	svc := newInterviewService(t, func(string) (string, int) {
		return "model overloaded", http.StatusServiceUnavailable
	})

	_, err := svc.Start(context.Background(), 1, "Backend Engineer")
	assert.ErrorIs(t, err, util.ErrGenerationFailed)
}

func TestInterviewSubmitAnswersTransition(t *testing.T) {
	svc := newInterviewService(t, interviewRouter)

	session, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)

	updated, err := svc.SubmitAnswers(context.Background(), 1, session.ID, answersFor(session))
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusPendingEvaluation, updated.Status)
	assert.Len(t, updated.UserAnswers, 5)

	// A second submission must conflict.
	_, err = svc.SubmitAnswers(context.Background(), 1, session.ID, answersFor(session))
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestInterviewEvaluate(t *testing.T) {
	svc := newInterviewService(t, interviewRouter)

	session, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)
	_, err = svc.SubmitAnswers(context.Background(), 1, session.ID, answersFor(session))
	require.NoError(t, err)

	evaluated, err := svc.Evaluate(context.Background(), 1, session.ID)
	require.NoError(t, err)

	assert.Equal(t, model.InterviewStatusCompleted, evaluated.Status)
	require.NotNil(t, evaluated.Evaluation)
	require.Len(t, evaluated.Evaluation.IndividualEvaluations, 5)
	for i, eval := range evaluated.Evaluation.IndividualEvaluations {
		assert.Equal(t, evaluated.UserAnswers[i].QuestionID, eval.QuestionID, "evaluations keep answer order")
		assert.Equal(t, 8, eval.Scores.Tone)
	}
	assert.Equal(t, 7.5, evaluated.Evaluation.DashboardSummary.OverallScoreOutOf10)
	assert.Equal(t, "Promising candidate.", evaluated.Evaluation.DashboardSummary.FinalVerdict)
}

func TestInterviewEvaluateBeforeAnswersConflicts(t *testing.T) {
	svc := newInterviewService(t, interviewRouter)

	session, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)

	_, err = svc.Evaluate(context.Background(), 1, session.ID)
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestInterviewEvaluatePartialFailure(t *testing.T) {
	var mu sync.Mutex
	var failQuestion string
	svc := newInterviewService(t, func(prompt string) (string, int) {
		mu.Lock()
		fail := failQuestion
		mu.Unlock()
		if fail != "" && strings.Contains(prompt, fail) {
			return "overloaded", http.StatusServiceUnavailable
		}
		return interviewRouter(prompt)
	})

	session, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)
	_, err = svc.SubmitAnswers(context.Background(), 1, session.ID, answersFor(session))
	require.NoError(t, err)

	// Fail only the evaluation of the third answer.
	mu.Lock()
	failQuestion = session.Questions[2].Text
	mu.Unlock()

	evaluated, err := svc.Evaluate(context.Background(), 1, session.ID)
	require.NoError(t, err)

	evals := evaluated.Evaluation.IndividualEvaluations
	require.Len(t, evals, 5)
	assert.Equal(t, "Evaluation failed for this specific answer.", evals[2].Feedback)
	assert.Equal(t, model.EvaluationScores{}, evals[2].Scores)
	assert.Equal(t, "Solid answer.", evals[0].Feedback)
}

func TestInterviewEvaluateSummaryFailureKeepsSessionPending(t *testing.T) {
	svc := newInterviewService(t, func(prompt string) (string, int) {
		if strings.Contains(prompt, "Summarize the whole interview") {
			return "overloaded", http.StatusServiceUnavailable
		}
		return interviewRouter(prompt)
	})

	session, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)
	_, err = svc.SubmitAnswers(context.Background(), 1, session.ID, answersFor(session))
	require.NoError(t, err)

	_, err = svc.Evaluate(context.Background(), 1, session.ID)
	assert.ErrorIs(t, err, util.ErrGenerationFailed)

	// The session must still be retryable.
	current, err := svc.store.Get(context.Background(), session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusPendingEvaluation, current.Status)
	assert.Nil(t, current.Evaluation)
}

func TestInterviewHistory(t *testing.T) {
	svc := newInterviewService(t, interviewRouter)

	_, err := svc.Start(context.Background(), 1, "Backend Engineer")
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), 1, "SRE")
	require.NoError(t, err)
	_, err = svc.Start(context.Background(), 2, "Other User")
	require.NoError(t, err)

	history := svc.History(context.Background(), 1)
	assert.Len(t, history, 2)
}
