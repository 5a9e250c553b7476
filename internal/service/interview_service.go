package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/internal/util"
	"vidyamitra_backend/pkg/logger"

	"go.uber.org/zap"
)

const interviewQuestionCount = 5

// DefaultTargetRole is used when the caller gives no role and no resume
// analysis exists to infer one from.
const DefaultTargetRole = "professional"

type InterviewService struct {
	store      *store.SessionStore[*model.InterviewSession]
	ai         *AIService
	resumeRepo *repository.ResumeEvaluationRepository
}

func NewInterviewService(st *store.SessionStore[*model.InterviewSession], ai *AIService, resumeRepo *repository.ResumeEvaluationRepository) *InterviewService {
	return &InterviewService{store: st, ai: ai, resumeRepo: resumeRepo}
}

type generatedQuestionList struct {
	Questions []string `json:"questions"`
}

func (g *generatedQuestionList) Validate() error {
	if len(g.Questions) == 0 {
		return fmt.Errorf("no questions returned")
	}
	for _, q := range g.Questions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("empty question text")
		}
	}
	return nil
}

type generatedAnswerEvaluation struct {
	Scores   model.EvaluationScores `json:"scores"`
	Feedback string                 `json:"feedback"`
}

func (g *generatedAnswerEvaluation) Validate() error {
	for _, v := range []int{g.Scores.Tone, g.Scores.Confidence, g.Scores.Accuracy} {
		if v < 0 || v > 10 {
			return fmt.Errorf("score %d outside 0-10", v)
		}
	}
	return nil
}

type generatedDashboardSummary struct {
	model.DashboardSummary
}

func (g *generatedDashboardSummary) Validate() error {
	if g.OverallScoreOutOf10 < 0 || g.OverallScoreOutOf10 > 10 {
		return fmt.Errorf("overall score %.1f outside 0-10", g.OverallScoreOutOf10)
	}
	if strings.TrimSpace(g.FinalVerdict) == "" {
		return fmt.Errorf("empty final verdict")
	}
	return nil
}

// resolveTargetRole fills an empty role from the user's latest resume
// analysis, preferring the role the resume was evaluated against and falling
// back to the first suggested role. No analysis, or a durable store that
// cannot be reached, both mean the fixed default.
func resolveTargetRole(ctx context.Context, resumeRepo *repository.ResumeEvaluationRepository, requested string, userID uint) string {
	role := strings.TrimSpace(requested)
	if role != "" {
		return role
	}
	if resumeRepo != nil {
		if eval, err := resumeRepo.LatestByUser(ctx, userID); err == nil {
			if r := strings.TrimSpace(eval.Analysis.TargetRoleEvaluated); r != "" {
				return r
			}
			if len(eval.Analysis.SuggestedRoles) > 0 && strings.TrimSpace(eval.Analysis.SuggestedRoles[0]) != "" {
				return strings.TrimSpace(eval.Analysis.SuggestedRoles[0])
			}
		}
	}
	return DefaultTargetRole
}

// Start generates a fresh question set for the role and opens a session in
// the in_progress state.
func (s *InterviewService) Start(ctx context.Context, userID uint, targetRole string) (*model.InterviewSession, error) {
	role := resolveTargetRole(ctx, s.resumeRepo, targetRole, userID)

	systemPrompt := "You are a strict senior interviewer. Respond with JSON only, no prose."
	prompt := fmt.Sprintf(
		`Generate exactly %d challenging interview questions for a candidate applying for the role of %q. `+
			`Mix behavioral and role-specific technical questions. `+
			`Return JSON of the form {"questions": ["question one", "question two", ...]}.`,
		interviewQuestionCount, role)

	var generated generatedQuestionList
	if err := s.ai.GenerateJSON(ctx, "interview_questions", systemPrompt, prompt, &generated); err != nil {
		return nil, err
	}

	questions := make([]model.InterviewQuestion, 0, len(generated.Questions))
	for _, text := range generated.Questions {
		questions = append(questions, model.InterviewQuestion{
			ID:   model.GenerateUUID(),
			Text: text,
		})
	}

	session := &model.InterviewSession{
		UserID:     userID,
		TargetRole: role,
		Questions:  questions,
		Status:     model.InterviewStatusInProgress,
	}
	s.store.Create(ctx, session)

	return session, nil
}

// SubmitAnswers attaches the candidate's answers and moves the session to
// pending_evaluation. Only an in_progress session accepts answers; submitting
// twice, or against an evaluated session, is a conflict.
func (s *InterviewService) SubmitAnswers(ctx context.Context, userID uint, sessionID string, answers []model.InterviewAnswer) (*model.InterviewSession, error) {
	session, err := s.store.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.InterviewStatusInProgress {
		return nil, fmt.Errorf("%w: session is %s, answers already submitted", util.ErrConflict, session.Status)
	}

	session.UserAnswers = answers
	session.Status = model.InterviewStatusPendingEvaluation
	s.store.Save(ctx, session)

	return session, nil
}

// Evaluate scores every answer concurrently, then asks for a whole-session
// summary, and completes the session. A single answer whose evaluation fails
// gets a neutral placeholder rather than sinking the whole run; only a failed
// summary aborts, leaving the session pending_evaluation for a retry.
func (s *InterviewService) Evaluate(ctx context.Context, userID uint, sessionID string) (*model.InterviewSession, error) {
	session, err := s.store.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.InterviewStatusPendingEvaluation {
		return nil, fmt.Errorf("%w: session is %s, expected %s", util.ErrConflict, session.Status, model.InterviewStatusPendingEvaluation)
	}

	questionText := make(map[string]string, len(session.Questions))
	for _, q := range session.Questions {
		questionText[q.ID] = q.Text
	}

	evaluations := make([]model.AnswerEvaluation, len(session.UserAnswers))
	var wg sync.WaitGroup
	for i, answer := range session.UserAnswers {
		wg.Add(1)
		go func(i int, answer model.InterviewAnswer) {
			defer wg.Done()
			evaluations[i] = s.evaluateAnswer(ctx, session.TargetRole, questionText[answer.QuestionID], answer)
		}(i, answer)
	}
	wg.Wait()

	summary, err := s.summarize(ctx, session, evaluations)
	if err != nil {
		return nil, err
	}

	session.Evaluation = &model.InterviewEvaluation{
		IndividualEvaluations: evaluations,
		DashboardSummary:      *summary,
	}
	session.Status = model.InterviewStatusCompleted
	s.store.Save(ctx, session)

	return session, nil
}

func (s *InterviewService) evaluateAnswer(ctx context.Context, role, question string, answer model.InterviewAnswer) model.AnswerEvaluation {
	systemPrompt := "You are a strict senior interviewer scoring one answer. Respond with JSON only."
	prompt := fmt.Sprintf(
		`The candidate is applying for the role of %q.
Question: %s
Answer: %s

Score the answer on tone, confidence and accuracy, each an integer from 0 to 10, and give one short paragraph of feedback.
Return JSON of the form {"scores": {"tone": 0, "confidence": 0, "accuracy": 0}, "feedback": "..."}.`,
		role, question, answer.AnswerText)

	var eval generatedAnswerEvaluation
	if err := s.ai.GenerateJSON(ctx, "answer_evaluation", systemPrompt, prompt, &eval); err != nil {
		logger.Log.Warn("answer evaluation failed, substituting placeholder",
			zap.String("questionId", answer.QuestionID), zap.Error(err))
		return model.AnswerEvaluation{
			QuestionID: answer.QuestionID,
			Scores:     model.EvaluationScores{},
			Feedback:   "Evaluation failed for this specific answer.",
		}
	}

	return model.AnswerEvaluation{
		QuestionID: answer.QuestionID,
		Scores:     eval.Scores,
		Feedback:   eval.Feedback,
	}
}

func (s *InterviewService) summarize(ctx context.Context, session *model.InterviewSession, evaluations []model.AnswerEvaluation) (*model.DashboardSummary, error) {
	var transcript strings.Builder
	questionText := make(map[string]string, len(session.Questions))
	for _, q := range session.Questions {
		questionText[q.ID] = q.Text
	}
	for i, answer := range session.UserAnswers {
		fmt.Fprintf(&transcript, "Q%d: %s\nA%d: %s\n", i+1, questionText[answer.QuestionID], i+1, answer.AnswerText)
		if i < len(evaluations) {
			fmt.Fprintf(&transcript, "Feedback: %s\n", evaluations[i].Feedback)
		}
		transcript.WriteString("\n")
	}

	systemPrompt := "You are a strict senior interviewer writing a final verdict. Respond with JSON only."
	prompt := fmt.Sprintf(
		`The candidate interviewed for the role of %q. Here is the transcript with per-answer feedback:

%s
Summarize the whole interview. Return JSON of the form {"overall_score_out_of_10": 0.0, "key_strengths": ["..."], "areas_for_improvement": ["..."], "final_verdict": "..."}.`,
		session.TargetRole, transcript.String())

	var summary generatedDashboardSummary
	if err := s.ai.GenerateJSON(ctx, "interview_summary", systemPrompt, prompt, &summary); err != nil {
		return nil, err
	}
	return &summary.DashboardSummary, nil
}

// History lists the user's sessions, newest first.
func (s *InterviewService) History(ctx context.Context, userID uint) []*model.InterviewSession {
	return s.store.History(ctx, userID)
}
