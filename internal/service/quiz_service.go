package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/internal/util"
)

const (
	defaultQuizQuestionCount = 5
	maxQuizQuestionCount     = 20
	noAnswerMarker           = "No answer provided"
)

type QuizService struct {
	store *store.SessionStore[*model.Quiz]
	ai    *AIService
}

func NewQuizService(st *store.SessionStore[*model.Quiz], ai *AIService) *QuizService {
	return &QuizService{store: st, ai: ai}
}

type generatedQuiz struct {
	Questions []struct {
		QuestionText  string   `json:"question_text"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	} `json:"questions"`
}

func (g *generatedQuiz) Validate() error {
	if len(g.Questions) == 0 {
		return fmt.Errorf("no questions returned")
	}
	for i, q := range g.Questions {
		if strings.TrimSpace(q.QuestionText) == "" {
			return fmt.Errorf("question %d has empty text", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d has %d options", i, len(q.Options))
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %d: correct answer not among options", i)
		}
	}
	return nil
}

// StartedQuiz is the pre-submission view of a quiz: questions without their
// grading fields.
type StartedQuiz struct {
	ID         string               `json:"id"`
	Topic      string               `json:"topic"`
	Difficulty string               `json:"difficulty"`
	Questions  []model.SafeQuestion `json:"questions"`
	Status     string               `json:"status"`
}

// QuizResult is the post-submission view with full grading detail.
type QuizResult struct {
	ID              string                 `json:"id"`
	Topic           string                 `json:"topic"`
	Difficulty      string                 `json:"difficulty"`
	ScorePercentage float64                `json:"score_percentage"`
	DetailedResults []model.QuizItemResult `json:"detailed_results"`
	Status          string                 `json:"status"`
}

// QuizSummary is the history projection. Grading detail and questions are
// deliberately absent.
type QuizSummary struct {
	ID              string    `json:"id"`
	Topic           string    `json:"topic"`
	Difficulty      string    `json:"difficulty"`
	ScorePercentage *float64  `json:"score_percentage,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Generate creates a pending quiz. Correct answers and explanations stay
// server-side until submission.
func (s *QuizService) Generate(ctx context.Context, userID uint, topic, difficulty string, count int) (*StartedQuiz, error) {
	if count <= 0 {
		count = defaultQuizQuestionCount
	}
	if count > maxQuizQuestionCount {
		count = maxQuizQuestionCount
	}
	if strings.TrimSpace(difficulty) == "" {
		difficulty = "medium"
	}

	systemPrompt := "You are a quiz generator for career upskilling. Respond with JSON only, no prose."
	prompt := fmt.Sprintf(
		`Generate a multiple-choice quiz with exactly %d questions on the topic %q at %s difficulty. `+
			`Each question has 4 options, exactly one of which is correct, and a one-sentence explanation. `+
			`Return JSON of the form {"questions": [{"question_text": "...", "options": ["...", "...", "...", "..."], "correct_answer": "...", "explanation": "..."}]}.`,
		count, topic, difficulty)

	var generated generatedQuiz
	if err := s.ai.GenerateJSON(ctx, "quiz", systemPrompt, prompt, &generated); err != nil {
		return nil, err
	}

	questions := make([]model.QuizQuestion, 0, len(generated.Questions))
	for _, q := range generated.Questions {
		questions = append(questions, model.QuizQuestion{
			ID:            model.GenerateUUID(),
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	quiz := &model.Quiz{
		UserID:     userID,
		Topic:      topic,
		Difficulty: difficulty,
		Questions:  questions,
		Status:     model.QuizStatusPending,
	}
	s.store.Create(ctx, quiz)

	safe := make([]model.SafeQuestion, 0, len(questions))
	for _, q := range questions {
		safe = append(safe, q.Safe())
	}

	return &StartedQuiz{
		ID:         quiz.ID,
		Topic:      quiz.Topic,
		Difficulty: quiz.Difficulty,
		Questions:  safe,
		Status:     quiz.Status,
	}, nil
}

// Submit grades the answers and completes the quiz. Grading is deterministic:
// a case-sensitive exact match against the stored correct answer, with an
// unanswered question counting as wrong. A completed quiz cannot be submitted
// again.
func (s *QuizService) Submit(ctx context.Context, userID uint, quizID string, answers []model.QuizAnswer) (*QuizResult, error) {
	quiz, err := s.store.Get(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if quiz.Status != model.QuizStatusPending {
		return nil, fmt.Errorf("%w: quiz already completed", util.ErrConflict)
	}

	answered := make(map[string]string, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = a.SelectedOption
	}

	results := make([]model.QuizItemResult, 0, len(quiz.Questions))
	correct := 0
	for _, q := range quiz.Questions {
		userAnswer, ok := answered[q.ID]
		if !ok || userAnswer == "" {
			userAnswer = noAnswerMarker
		}
		isCorrect := userAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results = append(results, model.QuizItemResult{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	score := 0.0
	if len(quiz.Questions) > 0 {
		score = float64(correct) / float64(len(quiz.Questions)) * 100
	}

	quiz.UserAnswers = answers
	quiz.DetailedResults = results
	quiz.ScorePercentage = &score
	quiz.Status = model.QuizStatusCompleted
	s.store.Save(ctx, quiz)

	return &QuizResult{
		ID:              quiz.ID,
		Topic:           quiz.Topic,
		Difficulty:      quiz.Difficulty,
		ScorePercentage: score,
		DetailedResults: results,
		Status:          quiz.Status,
	}, nil
}

// History lists the user's quizzes as summaries, newest first.
func (s *QuizService) History(ctx context.Context, userID uint) []QuizSummary {
	quizzes := s.store.History(ctx, userID)
	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, QuizSummary{
			ID:              q.ID,
			Topic:           q.Topic,
			Difficulty:      q.Difficulty,
			ScorePercentage: q.ScorePercentage,
			Status:          q.Status,
			CreatedAt:       q.CreatedAt,
		})
	}
	return summaries
}
