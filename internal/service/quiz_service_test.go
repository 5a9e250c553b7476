package service

import (
	"context"
	"testing"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/store"
	"vidyamitra_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizStubPayload = `{
  "questions": [
    {"question_text": "What does SQL stand for?", "options": ["Structured Query Language", "Simple Query List", "Sequential Query Logic", "Standard Quality Level"], "correct_answer": "Structured Query Language", "explanation": "SQL is the standard language for relational databases."},
    {"question_text": "Which command reads rows?", "options": ["SELECT", "INSERT", "DELETE", "UPDATE"], "correct_answer": "SELECT", "explanation": "SELECT retrieves rows."},
    {"question_text": "Which clause filters rows?", "options": ["WHERE", "ORDER BY", "GROUP BY", "LIMIT"], "correct_answer": "WHERE", "explanation": "WHERE filters rows."},
    {"question_text": "Which keyword sorts results?", "options": ["ORDER BY", "SORT", "ARRANGE", "RANK"], "correct_answer": "ORDER BY", "explanation": "ORDER BY sorts the result set."}
  ]
}`

func newQuizService(t *testing.T) *QuizService {
	t.Helper()
	ai, _ := newAIStub(t, quizStubPayload)
	return NewQuizService(store.NewSessionStore[*model.Quiz]("quiz", nil), ai)
}

func TestQuizGenerateStripsGradingFields(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)

	assert.Equal(t, model.QuizStatusPending, started.Status)
	require.Len(t, started.Questions, 4)
	for _, q := range started.Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.QuestionText)
		assert.Len(t, q.Options, 4)
	}

	// The stored record keeps the grading fields the projection hides.
	stored, err := svc.store.Get(context.Background(), started.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Structured Query Language", stored.Questions[0].CorrectAnswer)
	assert.NotEmpty(t, stored.Questions[0].Explanation)
}

func TestQuizSubmitGrades(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)

	// Three correct, one wrong.
	answers := []model.QuizAnswer{
		{QuestionID: started.Questions[0].ID, SelectedOption: "Structured Query Language"},
		{QuestionID: started.Questions[1].ID, SelectedOption: "SELECT"},
		{QuestionID: started.Questions[2].ID, SelectedOption: "WHERE"},
		{QuestionID: started.Questions[3].ID, SelectedOption: "SORT"},
	}

	result, err := svc.Submit(context.Background(), 1, started.ID, answers)
	require.NoError(t, err)

	assert.Equal(t, 75.0, result.ScorePercentage)
	assert.Equal(t, model.QuizStatusCompleted, result.Status)
	require.Len(t, result.DetailedResults, 4)
	assert.True(t, result.DetailedResults[0].IsCorrect)
	assert.False(t, result.DetailedResults[3].IsCorrect)
	assert.Equal(t, "ORDER BY", result.DetailedResults[3].CorrectAnswer)
	assert.NotEmpty(t, result.DetailedResults[3].Explanation)
}

func TestQuizSubmitMissingAnswers(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)

	// Only answer the first question.
	answers := []model.QuizAnswer{
		{QuestionID: started.Questions[0].ID, SelectedOption: "Structured Query Language"},
	}

	result, err := svc.Submit(context.Background(), 1, started.ID, answers)
	require.NoError(t, err)

	assert.Equal(t, 25.0, result.ScorePercentage)
	for _, item := range result.DetailedResults[1:] {
		assert.Equal(t, "No answer provided", item.UserAnswer)
		assert.False(t, item.IsCorrect)
	}
}

func TestQuizSubmitIsCaseSensitive(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)

	answers := []model.QuizAnswer{
		{QuestionID: started.Questions[1].ID, SelectedOption: "select"},
	}

	result, err := svc.Submit(context.Background(), 1, started.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.ScorePercentage)
}

func TestQuizDoubleSubmitConflicts(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, started.ID, nil)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, started.ID, nil)
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestQuizSubmitEmptyQuestionSet(t *testing.T) {
	svc := newQuizService(t)

	// A quiz with no questions can only exist through direct store access,
	// but grading must still not divide by zero.
	quiz := &model.Quiz{UserID: 1, Topic: "empty", Status: model.QuizStatusPending}
	id := svc.store.Create(context.Background(), quiz)

	result, err := svc.Submit(context.Background(), 1, id, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.ScorePercentage)
}

func TestQuizSubmitWrongOwner(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 2, started.ID, nil)
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestQuizHistoryProjection(t *testing.T) {
	svc := newQuizService(t)

	started, err := svc.Generate(context.Background(), 1, "SQL", "easy", 4)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), 1, started.ID, nil)
	require.NoError(t, err)

	history := svc.History(context.Background(), 1)
	require.Len(t, history, 1)
	assert.Equal(t, started.ID, history[0].ID)
	assert.Equal(t, "SQL", history[0].Topic)
	assert.Equal(t, model.QuizStatusCompleted, history[0].Status)
	require.NotNil(t, history[0].ScorePercentage)
	assert.Equal(t, 0.0, *history[0].ScorePercentage)
}
