package service

import (
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/store"
	"studyquest_backend/pkg/logger"

	"go.uber.org/zap"
)

// AchievementService 徽章发放。每种徽章对每个用户只发一次。
type AchievementService struct {
	Store *store.MemStore
}

func NewAchievementService(s *store.MemStore) *AchievementService {
	return &AchievementService{Store: s}
}

func (s *AchievementService) ListByUser(userID uint) []model.Achievement {
	return s.Store.ListAchievementsByUser(userID)
}

// OnMaterialUploaded 首个素材触发first_upload
func (s *AchievementService) OnMaterialUploaded(userID uint) {
	if len(s.Store.ListMaterialsByUser(userID)) == 1 {
		s.award(userID, model.BadgeFirstUpload)
	}
}

// OnSessionCompleted 准确率≥90%触发quiz_master，第5次会话触发consistent_learner
func (s *AchievementService) OnSessionCompleted(userID uint, session model.QuizSession) {
	if session.Accuracy >= 90 {
		s.award(userID, model.BadgeQuizMaster)
	}
	if len(s.Store.ListSessionsByUser(userID)) >= 5 {
		s.award(userID, model.BadgeConsistentLearner)
	}
}

func (s *AchievementService) award(userID uint, badgeType string) {
	if s.Store.HasBadge(userID, badgeType) {
		return
	}
	s.Store.CreateAchievement(model.Achievement{
		UserID:    userID,
		BadgeType: badgeType,
	})
	logger.Log.Info("Achievement earned",
		zap.Uint("userId", userID),
		zap.String("badge", badgeType))
}
