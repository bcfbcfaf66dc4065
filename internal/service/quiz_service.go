package service

import (
	"fmt"
	"math"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/store"
	"studyquest_backend/internal/util"
	"studyquest_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizService 测验会话与答题记录
type QuizService struct {
	Store       *store.MemStore
	UserRepo    *repository.UserRepository
	Achievement *AchievementService
}

func NewQuizService(s *store.MemStore, userRepo *repository.UserRepository, achievement *AchievementService) *QuizService {
	return &QuizService{Store: s, UserRepo: userRepo, Achievement: achievement}
}

// Accuracy 百分比四舍五入取整，无题记0
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// CreateSession 提交一次完成的测验。准确率一律按服务端口径重算，
// 不信任客户端传值。XP累加进用户账户。
func (s *QuizService) CreateSession(userID uint, session model.QuizSession) (model.QuizSession, error) {
	if session.TotalQuestions < 0 || session.CorrectAnswers < 0 {
		return model.QuizSession{}, fmt.Errorf("question counts must be non-negative")
	}
	if session.CorrectAnswers > session.TotalQuestions {
		return model.QuizSession{}, fmt.Errorf("correctAnswers cannot exceed totalQuestions")
	}

	switch session.SessionType {
	case model.SessionTypeQuick, model.SessionTypeStandard, model.SessionTypeDeep:
	case "":
		session.SessionType = model.SessionTypeQuick
	default:
		return model.QuizSession{}, fmt.Errorf("unknown session type: %s", session.SessionType)
	}

	session.UserID = userID
	session.Accuracy = Accuracy(session.CorrectAnswers, session.TotalQuestions)

	created := s.Store.CreateSession(session)

	if created.XPEarned > 0 && s.UserRepo != nil {
		if err := s.UserRepo.AddXP(userID, created.XPEarned); err != nil {
			logger.Log.Error("Failed to credit XP",
				zap.Uint("userId", userID),
				zap.Int("xp", created.XPEarned),
				zap.Error(err))
		}
	}

	s.Achievement.OnSessionCompleted(userID, created)

	logger.Log.Info("Quiz session recorded",
		zap.Uint("userId", userID),
		zap.Int("sessionId", created.ID),
		zap.Int("accuracy", created.Accuracy))
	return created, nil
}

func (s *QuizService) ListByUser(userID uint) []model.QuizSession {
	return s.Store.ListSessionsByUser(userID)
}

// RecordAnswer 记录单题作答。isCorrect由服务端比对得出。
func (s *QuizService) RecordAnswer(userID uint, sessionID, questionID, selectedAnswer, confidenceLevel int) (model.UserAnswer, error) {
	if _, ok := s.Store.GetSession(sessionID); !ok {
		return model.UserAnswer{}, fmt.Errorf("quiz session %d not found", sessionID)
	}
	question, ok := s.Store.GetQuestion(questionID)
	if !ok {
		return model.UserAnswer{}, fmt.Errorf("question %d not found", questionID)
	}
	if confidenceLevel < 1 || confidenceLevel > 5 {
		return model.UserAnswer{}, fmt.Errorf("confidenceLevel must be between 1 and 5")
	}
	if selectedAnswer < 0 || selectedAnswer >= len(question.Options) {
		return model.UserAnswer{}, util.ErrInvalidAnswerIndex
	}

	answer := s.Store.CreateAnswer(model.UserAnswer{
		UserID:          userID,
		QuestionID:      questionID,
		SessionID:       sessionID,
		SelectedAnswer:  selectedAnswer,
		IsCorrect:       selectedAnswer == question.CorrectAnswer,
		ConfidenceLevel: confidenceLevel,
	})
	return answer, nil
}
