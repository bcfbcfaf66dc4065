package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"studyquest_backend/internal/config"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/store"
	"studyquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaterialService(memStore *store.MemStore, ai *AIService) *MaterialService {
	achievement := NewAchievementService(memStore)
	return NewMaterialService(memStore, NewExtractService(), ai, nil, achievement, 50)
}

// 超过生成阈值的正文
var longContent = strings.Repeat("The cell contains dna and protein. ", 5)

func TestUploadSkippedWithoutAPIKey(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	result, err := svc.Upload(context.Background(), 1, []byte(longContent), "text/plain", "bio_notes.txt", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, "no_api_key", result.SkipReason)
	assert.Equal(t, 0, result.QuestionsGenerated)

	// 素材本身照常入库，标题学科自动推断
	assert.Equal(t, "Bio Notes", result.Material.Title)
	assert.Equal(t, "Biology", result.Material.Subject)
	assert.Len(t, memStore.ListMaterialsByUser(1), 1)
}

func TestUploadSkippedContentTooShort(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{APIKey: "sk-x", BaseURL: "http://unused", Model: "m"}))

	result, err := svc.Upload(context.Background(), 1, []byte("short"), "text/plain", "notes.txt", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, "content_too_short", result.SkipReason)
}

func TestUploadGenerated(t *testing.T) {
	payload := `[
		{"question":"Q1","options":["A","B","C","D"],"correctAnswer":0,"difficulty":"beginner","subject":"Biology"},
		{"question":"Q2","options":["A","B","C","D"],"correctAnswer":1,"difficulty":"intermediate","subject":"Biology"},
		{"question":"Q3","options":["A","B","C","D"],"correctAnswer":2,"difficulty":"advanced","subject":"Biology"},
		{"question":"Q4","options":["A","B","C","D"],"correctAnswer":3,"difficulty":"beginner","subject":"Biology"},
		{"question":"Q5","options":["A","B","C","D"],"correctAnswer":0,"difficulty":"beginner","subject":"Biology"}
	]`
	ai := stubAI(t, completionWith(payload))
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, ai)

	result, err := svc.Upload(context.Background(), 1, []byte(longContent), "text/plain", "bio.txt", "Cell Basics", "Biology", "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeGenerated, result.Outcome)
	assert.Equal(t, 5, result.QuestionsGenerated)
	assert.Equal(t, 5, result.Material.QuestionsGenerated)
	assert.Equal(t, "Cell Basics", result.Material.Title)

	questions := memStore.ListQuestionsByMaterial(result.Material.ID)
	require.Len(t, questions, 5)
	assert.Equal(t, result.Material.ID, questions[0].MaterialID)

	stored, ok := memStore.GetMaterial(result.Material.ID)
	require.True(t, ok)
	assert.Equal(t, 5, stored.QuestionsGenerated)
}

func TestUploadFailedGenerationStillPersists(t *testing.T) {
	ai := stubAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, ai)

	result, err := svc.Upload(context.Background(), 1, []byte(longContent), "text/plain", "bio.txt", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Empty(t, result.SkipReason)
	assert.Len(t, memStore.ListMaterialsByUser(1), 1)
	assert.Empty(t, memStore.ListQuestionsByMaterial(result.Material.ID))
}

func TestUploadUnsupportedTypePersistsNothing(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	_, err := svc.Upload(context.Background(), 1, []byte("x"), "application/zip", "a.zip", "", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrUnsupportedFileType))
	assert.Empty(t, memStore.ListMaterialsByUser(1))
}

func TestUploadFileTooLarge(t *testing.T) {
	memStore := store.NewMemStore()
	svc := NewMaterialService(memStore, NewExtractService(), NewAIService(config.AIConfig{}), nil, NewAchievementService(memStore), 1)

	big := make([]byte, 2*1024*1024)
	_, err := svc.Upload(context.Background(), 1, big, "text/plain", "big.txt", "", "", "")
	assert.True(t, errors.Is(err, util.ErrFileTooLarge))
	assert.Empty(t, memStore.ListMaterialsByUser(1))
}

func TestUploadImageUsesManualContent(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	result, err := svc.Upload(context.Background(), 1, []byte{0xFF, 0xD8}, "image/png", "diagram.png", "", "Biology", "manual notes about the cell")
	require.NoError(t, err)
	assert.Equal(t, model.FileTypeImage, result.Material.FileType)
	assert.Equal(t, "manual notes about the cell", result.Material.Content)
}

func TestUploadImageWithoutContentRejected(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	// 图片提取不出正文，又没有手工正文，整个请求失败且不落库
	_, err := svc.Upload(context.Background(), 1, []byte{0xFF, 0xD8}, "image/png", "diagram.png", "", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMissingMaterialFields))
	assert.Empty(t, memStore.ListMaterialsByUser(1))
}

func TestUploadManualContentOverridesExtracted(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	result, err := svc.Upload(context.Background(), 1, []byte("extracted body text"), "text/plain", "notes.txt", "", "Biology", "my manual notes")
	require.NoError(t, err)
	assert.Equal(t, "my manual notes", result.Material.Content)
}

func TestFirstUploadAwardsBadge(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	_, err := svc.Upload(context.Background(), 1, []byte(longContent), "text/plain", "a.txt", "", "", "")
	require.NoError(t, err)
	assert.True(t, memStore.HasBadge(1, model.BadgeFirstUpload))

	// 第二次上传不重复发放
	_, err = svc.Upload(context.Background(), 1, []byte(longContent), "text/plain", "b.txt", "", "", "")
	require.NoError(t, err)
	assert.Len(t, memStore.ListAchievementsByUser(1), 1)
}

func TestCreateManualDefaultsToText(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	result, err := svc.CreateManual(context.Background(), 1, "Notes", "History", "", "the empire")
	require.NoError(t, err)
	assert.Equal(t, model.FileTypeText, result.Material.FileType)
	assert.Equal(t, 1, result.Material.ID)
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, "no_api_key", result.SkipReason)
}

func TestCreateManualGeneratesQuestions(t *testing.T) {
	payload := `[{"question":"Q1","options":["A","B","C","D"],"correctAnswer":0,"difficulty":"beginner","subject":"Biology"}]`
	ai := stubAI(t, completionWith(payload))
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, ai)

	result, err := svc.CreateManual(context.Background(), 1, "Notes", "Biology", "", longContent)
	require.NoError(t, err)
	assert.Equal(t, OutcomeGenerated, result.Outcome)
	assert.Equal(t, 1, result.QuestionsGenerated)
	assert.Len(t, memStore.ListQuestionsByMaterial(result.Material.ID), 1)
}

func TestCreateManualMissingFields(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	_, err := svc.CreateManual(context.Background(), 1, "Notes", "Biology", "", "   ")
	assert.True(t, errors.Is(err, util.ErrMissingMaterialFields))
	assert.Empty(t, memStore.ListMaterialsByUser(1))
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	m, err := svc.CreateManual(context.Background(), 1, "Notes", "Biology", "", "x")
	require.NoError(t, err)

	err = svc.Delete(2, m.Material.ID)
	assert.True(t, errors.Is(err, util.ErrMaterialNotFound))
	assert.Len(t, memStore.ListMaterialsByUser(1), 1)

	require.NoError(t, svc.Delete(1, m.Material.ID))
	assert.Empty(t, memStore.ListMaterialsByUser(1))
}

func TestSubjectsOf(t *testing.T) {
	memStore := store.NewMemStore()
	svc := newMaterialService(memStore, NewAIService(config.AIConfig{}))

	mustCreateManual(t, svc, 1, "A", "Biology", "x")
	mustCreateManual(t, svc, 1, "B", "biology", "x")
	mustCreateManual(t, svc, 1, "C", "History", "x")

	assert.Equal(t, []string{"Biology", "History"}, svc.SubjectsOf(1))
}

func mustCreateManual(t *testing.T, svc *MaterialService, userID uint, title, subject, content string) model.StudyMaterial {
	t.Helper()
	result, err := svc.CreateManual(context.Background(), userID, title, subject, "", content)
	require.NoError(t, err)
	return result.Material
}
