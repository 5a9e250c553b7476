package repository

import (
	"context"
	"testing"
	"time"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.InterviewSession{}, &model.Quiz{}))
	return db
}

func TestInsertIssuesID(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))

	session := &model.InterviewSession{
		UserID:     1,
		TargetRole: "Backend Engineer",
		Status:     model.InterviewStatusInProgress,
	}
	id, err := repo.Insert(context.Background(), session)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestInsertDoesNotMutateRecord(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))

	session := &model.InterviewSession{UserID: 1, Status: model.InterviewStatusInProgress}
	session.ID = "caller-owned-id"

	id, err := repo.Insert(context.Background(), session)
	require.NoError(t, err)

	// The insert works on a copy: the caller's record keeps its id and the
	// database row carries the issued one.
	assert.Equal(t, "caller-owned-id", session.ID)
	assert.NotEqual(t, session.ID, id)
}

func TestFindByIDAndUser(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))

	id, err := repo.Insert(context.Background(), &model.InterviewSession{
		UserID:     1,
		TargetRole: "SRE",
		Status:     model.InterviewStatusInProgress,
		Questions:  []model.InterviewQuestion{{ID: "q1", Text: "Why SRE?"}},
	})
	require.NoError(t, err)

	found, err := repo.FindByIDAndUser(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, "SRE", found.TargetRole)
	require.Len(t, found.Questions, 1)
	assert.Equal(t, "Why SRE?", found.Questions[0].Text)

	// The wrong owner sees not-found, not forbidden: the query never reveals
	// whether the id exists for someone else.
	_, err = repo.FindByIDAndUser(context.Background(), id, 2)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = repo.FindByIDAndUser(context.Background(), "no-such-id", 1)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestUpdatePersistsPayloads(t *testing.T) {
	repo := NewInterviewRepository(newTestDB(t))

	session := &model.InterviewSession{UserID: 1, Status: model.InterviewStatusInProgress}
	id, err := repo.Insert(context.Background(), session)
	require.NoError(t, err)

	session.ID = id
	session.Status = model.InterviewStatusCompleted
	session.Evaluation = &model.InterviewEvaluation{
		DashboardSummary: model.DashboardSummary{
			OverallScoreOutOf10: 8.5,
			FinalVerdict:        "Strong hire.",
		},
	}
	require.NoError(t, repo.Update(context.Background(), session))

	found, err := repo.FindByIDAndUser(context.Background(), id, 1)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewStatusCompleted, found.Status)
	require.NotNil(t, found.Evaluation)
	assert.Equal(t, 8.5, found.Evaluation.DashboardSummary.OverallScoreOutOf10)
}

func TestListByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewInterviewRepository(db)

	old := &model.InterviewSession{UserID: 1, TargetRole: "old"}
	oldID, err := repo.Insert(context.Background(), old)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.InterviewSession{}).Where("id = ?", oldID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	_, err = repo.Insert(context.Background(), &model.InterviewSession{UserID: 1, TargetRole: "new"})
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), &model.InterviewSession{UserID: 2, TargetRole: "other"})
	require.NoError(t, err)

	sessions, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].TargetRole)
	assert.Equal(t, "old", sessions[1].TargetRole)
}
