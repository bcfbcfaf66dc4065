package service

import (
	"math/rand"
	"strings"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/store"
	"studyquest_backend/internal/util"
)

const defaultPracticeCount = 15

// QuestionService 题库读取面
type QuestionService struct {
	Store *store.MemStore
}

func NewQuestionService(s *store.MemStore) *QuestionService {
	return &QuestionService{Store: s}
}

// ListByMaterial 素材必须存在，无题返回空数组
func (s *QuestionService) ListByMaterial(materialID int) ([]model.Question, error) {
	if _, ok := s.Store.GetMaterial(materialID); !ok {
		return nil, util.ErrMaterialNotFound
	}
	return s.Store.ListQuestionsByMaterial(materialID), nil
}

// Practice 组卷：取用户全部素材下的题目，按学科和难度过滤后乱序截取。
// count<=0时取默认值。
func (s *QuestionService) Practice(userID uint, subject, difficulty string, count int) []model.Question {
	if count <= 0 {
		count = defaultPracticeCount
	}

	pool := make([]model.Question, 0)
	for _, m := range s.Store.ListMaterialsByUser(userID) {
		for _, q := range s.Store.ListQuestionsByMaterial(m.ID) {
			if subject != "" && !strings.EqualFold(q.Subject, subject) {
				continue
			}
			if difficulty != "" && !strings.EqualFold(q.Difficulty, difficulty) {
				continue
			}
			pool = append(pool, q)
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > count {
		pool = pool[:count]
	}
	return pool
}
