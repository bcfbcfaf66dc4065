package service

import (
	"fmt"
	"time"

	"studyquest_backend/internal/model"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/store"
)

// RecentActivity 面板上的近期测验条目
type RecentActivity struct {
	SessionID     int       `json:"sessionId"`
	MaterialTitle string    `json:"materialTitle"`
	Score         string    `json:"score"` // "c/t correct"
	Accuracy      int       `json:"accuracy"`
	CompletedAt   time.Time `json:"completedAt"`
}

type DashboardStats struct {
	TotalMaterials    int              `json:"totalMaterials"`
	QuestionsAnswered int              `json:"questionsAnswered"`
	AccuracyRate      int              `json:"accuracyRate"`
	TotalXP           int              `json:"totalXP"`
	CurrentStreak     int              `json:"currentStreak"`
	LongestStreak     int              `json:"longestStreak"`
	RecentActivity    []RecentActivity `json:"recentActivity"`
}

type SubjectProgress struct {
	Subject     string    `json:"subject"`
	Questions   int       `json:"questions"`
	Accuracy    int       `json:"accuracy"`
	LastStudied time.Time `json:"lastStudied"`
}

type PerformancePoint struct {
	SessionID   int       `json:"sessionId"`
	Accuracy    int       `json:"accuracy"`
	CompletedAt time.Time `json:"completedAt"`
}

type ProgressReport struct {
	OverallAccuracy     int                `json:"overallAccuracy"`
	QuestionsAnswered   int                `json:"questionsAnswered"`
	SubjectBreakdown    []SubjectProgress  `json:"subjectBreakdown"`
	PerformanceOverTime []PerformancePoint `json:"performanceOverTime"`
}

// DashboardService 面板与进度聚合，纯读，每次请求现算
type DashboardService struct {
	Store    *store.MemStore
	UserRepo *repository.UserRepository
}

func NewDashboardService(s *store.MemStore, userRepo *repository.UserRepository) *DashboardService {
	return &DashboardService{Store: s, UserRepo: userRepo}
}

func (s *DashboardService) Stats(userID uint) DashboardStats {
	materials := s.Store.ListMaterialsByUser(userID)
	sessions := s.Store.ListSessionsByUser(userID)

	totalQuestions, totalCorrect := sumSessions(sessions)

	stats := DashboardStats{
		TotalMaterials:    len(materials),
		QuestionsAnswered: totalQuestions,
		AccuracyRate:      Accuracy(totalCorrect, totalQuestions),
		RecentActivity:    make([]RecentActivity, 0, 3),
	}

	if s.UserRepo != nil {
		if user, err := s.UserRepo.FindByID(userID); err == nil {
			stats.TotalXP = user.TotalXP
			stats.CurrentStreak = user.CurrentStreak
			stats.LongestStreak = user.LongestStreak
		}
	}

	// 最近3次会话，保持时间顺序
	start := len(sessions) - 3
	if start < 0 {
		start = 0
	}
	for _, sess := range sessions[start:] {
		stats.RecentActivity = append(stats.RecentActivity, RecentActivity{
			SessionID:     sess.ID,
			MaterialTitle: s.materialTitle(sess.MaterialID),
			Score:         scoreLabel(sess),
			Accuracy:      sess.Accuracy,
			CompletedAt:   sess.CompletedAt,
		})
	}

	return stats
}

func (s *DashboardService) Progress(userID uint) ProgressReport {
	sessions := s.Store.ListSessionsByUser(userID)
	totalQuestions, totalCorrect := sumSessions(sessions)

	report := ProgressReport{
		OverallAccuracy:     Accuracy(totalCorrect, totalQuestions),
		QuestionsAnswered:   totalQuestions,
		SubjectBreakdown:    make([]SubjectProgress, 0),
		PerformanceOverTime: make([]PerformancePoint, 0, len(sessions)),
	}

	type subjectAgg struct {
		questions int
		correct   int
		last      time.Time
	}
	aggs := make(map[string]*subjectAgg)
	order := make([]string, 0)

	for _, sess := range sessions {
		report.PerformanceOverTime = append(report.PerformanceOverTime, PerformancePoint{
			SessionID:   sess.ID,
			Accuracy:    sess.Accuracy,
			CompletedAt: sess.CompletedAt,
		})

		material, ok := s.Store.GetMaterial(sess.MaterialID)
		if !ok {
			continue
		}
		agg, exists := aggs[material.Subject]
		if !exists {
			agg = &subjectAgg{}
			aggs[material.Subject] = agg
			order = append(order, material.Subject)
		}
		agg.questions += sess.TotalQuestions
		agg.correct += sess.CorrectAnswers
		if sess.CompletedAt.After(agg.last) {
			agg.last = sess.CompletedAt
		}
	}

	for _, subject := range order {
		agg := aggs[subject]
		report.SubjectBreakdown = append(report.SubjectBreakdown, SubjectProgress{
			Subject:     subject,
			Questions:   agg.questions,
			Accuracy:    Accuracy(agg.correct, agg.questions),
			LastStudied: agg.last,
		})
	}

	return report
}

func sumSessions(sessions []model.QuizSession) (total, correct int) {
	for _, sess := range sessions {
		total += sess.TotalQuestions
		correct += sess.CorrectAnswers
	}
	return total, correct
}

func (s *DashboardService) materialTitle(materialID int) string {
	if materialID == 0 {
		return "Practice Quiz"
	}
	if m, ok := s.Store.GetMaterial(materialID); ok {
		return m.Title
	}
	return "Practice Quiz"
}

func scoreLabel(sess model.QuizSession) string {
	return fmt.Sprintf("%d/%d correct", sess.CorrectAnswers, sess.TotalQuestions)
}
