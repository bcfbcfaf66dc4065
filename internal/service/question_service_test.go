package service

import (
	"errors"
	"testing"

	"studyquest_backend/internal/model"
	"studyquest_backend/internal/store"
	"studyquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuestions(memStore *store.MemStore, userID uint) {
	bio := memStore.CreateMaterial(model.StudyMaterial{UserID: userID, Subject: "Biology"})
	hist := memStore.CreateMaterial(model.StudyMaterial{UserID: userID, Subject: "History"})

	for i := 0; i < 10; i++ {
		memStore.CreateQuestion(model.Question{MaterialID: bio.ID, Subject: "Biology", Difficulty: model.DifficultyBeginner})
	}
	for i := 0; i < 10; i++ {
		memStore.CreateQuestion(model.Question{MaterialID: hist.ID, Subject: "History", Difficulty: model.DifficultyAdvanced})
	}
}

func TestListByMaterialNotFound(t *testing.T) {
	svc := NewQuestionService(store.NewMemStore())

	_, err := svc.ListByMaterial(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMaterialNotFound))
}

func TestListByMaterialEmpty(t *testing.T) {
	memStore := store.NewMemStore()
	svc := NewQuestionService(memStore)
	m := memStore.CreateMaterial(model.StudyMaterial{UserID: 1})

	questions, err := svc.ListByMaterial(m.ID)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestPracticeDefaultCount(t *testing.T) {
	memStore := store.NewMemStore()
	seedQuestions(memStore, 1)
	svc := NewQuestionService(memStore)

	assert.Len(t, svc.Practice(1, "", "", 0), 15)
}

func TestPracticeFilters(t *testing.T) {
	memStore := store.NewMemStore()
	seedQuestions(memStore, 1)
	svc := NewQuestionService(memStore)

	bio := svc.Practice(1, "Biology", "", 0)
	assert.Len(t, bio, 10)
	for _, q := range bio {
		assert.Equal(t, "Biology", q.Subject)
	}

	advanced := svc.Practice(1, "", model.DifficultyAdvanced, 0)
	assert.Len(t, advanced, 10)

	none := svc.Practice(1, "Biology", model.DifficultyAdvanced, 0)
	assert.Empty(t, none)
}

func TestPracticeLimit(t *testing.T) {
	memStore := store.NewMemStore()
	seedQuestions(memStore, 1)
	svc := NewQuestionService(memStore)

	assert.Len(t, svc.Practice(1, "", "", 3), 3)
	assert.Len(t, svc.Practice(1, "", "", 100), 20)
}

func TestPracticeOwnershipScope(t *testing.T) {
	memStore := store.NewMemStore()
	seedQuestions(memStore, 1)
	svc := NewQuestionService(memStore)

	assert.Empty(t, svc.Practice(2, "", "", 0))
}
