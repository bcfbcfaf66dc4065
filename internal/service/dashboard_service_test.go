package service

import (
	"testing"

	"studyquest_backend/internal/model"
	"studyquest_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsEmpty(t *testing.T) {
	svc := NewDashboardService(store.NewMemStore(), nil)

	stats := svc.Stats(1)
	assert.Equal(t, 0, stats.TotalMaterials)
	assert.Equal(t, 0, stats.QuestionsAnswered)
	assert.Equal(t, 0, stats.AccuracyRate)
	assert.Empty(t, stats.RecentActivity)
}

func TestStatsAggregation(t *testing.T) {
	memStore := store.NewMemStore()
	svc := NewDashboardService(memStore, nil)

	material := memStore.CreateMaterial(model.StudyMaterial{UserID: 1, Title: "Cell Basics", Subject: "Biology"})
	for i := 0; i < 4; i++ {
		memStore.CreateSession(model.QuizSession{
			UserID:         1,
			MaterialID:     material.ID,
			TotalQuestions: 10,
			CorrectAnswers: 7,
			Accuracy:       70,
		})
	}
	// 其他用户的数据不掺和
	memStore.CreateSession(model.QuizSession{UserID: 2, TotalQuestions: 10, CorrectAnswers: 1})

	stats := svc.Stats(1)
	assert.Equal(t, 1, stats.TotalMaterials)
	assert.Equal(t, 40, stats.QuestionsAnswered)
	assert.Equal(t, 70, stats.AccuracyRate)

	// 最近3次，按时间先后排列
	require.Len(t, stats.RecentActivity, 3)
	assert.Less(t, stats.RecentActivity[0].SessionID, stats.RecentActivity[1].SessionID)
	assert.Less(t, stats.RecentActivity[1].SessionID, stats.RecentActivity[2].SessionID)
	assert.Equal(t, "Cell Basics", stats.RecentActivity[0].MaterialTitle)
	assert.Equal(t, "7/10 correct", stats.RecentActivity[0].Score)
}

func TestStatsUnlinkedSessionTitle(t *testing.T) {
	memStore := store.NewMemStore()
	svc := NewDashboardService(memStore, nil)

	memStore.CreateSession(model.QuizSession{UserID: 1, TotalQuestions: 5, CorrectAnswers: 5})

	stats := svc.Stats(1)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, "Practice Quiz", stats.RecentActivity[0].MaterialTitle)
}

func TestProgressSubjectBreakdown(t *testing.T) {
	memStore := store.NewMemStore()
	svc := NewDashboardService(memStore, nil)

	bio := memStore.CreateMaterial(model.StudyMaterial{UserID: 1, Subject: "Biology"})
	hist := memStore.CreateMaterial(model.StudyMaterial{UserID: 1, Subject: "History"})

	memStore.CreateSession(model.QuizSession{UserID: 1, MaterialID: bio.ID, TotalQuestions: 10, CorrectAnswers: 8, Accuracy: 80})
	memStore.CreateSession(model.QuizSession{UserID: 1, MaterialID: bio.ID, TotalQuestions: 10, CorrectAnswers: 6, Accuracy: 60})
	memStore.CreateSession(model.QuizSession{UserID: 1, MaterialID: hist.ID, TotalQuestions: 5, CorrectAnswers: 5, Accuracy: 100})

	report := svc.Progress(1)
	assert.Equal(t, 25, report.QuestionsAnswered)
	assert.Equal(t, 76, report.OverallAccuracy) // round(19/25*100)
	assert.Len(t, report.PerformanceOverTime, 3)

	require.Len(t, report.SubjectBreakdown, 2)
	assert.Equal(t, "Biology", report.SubjectBreakdown[0].Subject)
	assert.Equal(t, 20, report.SubjectBreakdown[0].Questions)
	assert.Equal(t, 70, report.SubjectBreakdown[0].Accuracy)
	assert.Equal(t, "History", report.SubjectBreakdown[1].Subject)
	assert.Equal(t, 100, report.SubjectBreakdown[1].Accuracy)
}

func TestProgressEmpty(t *testing.T) {
	svc := NewDashboardService(store.NewMemStore(), nil)

	report := svc.Progress(1)
	assert.Equal(t, 0, report.OverallAccuracy)
	assert.Empty(t, report.SubjectBreakdown)
	assert.Empty(t, report.PerformanceOverTime)
}
