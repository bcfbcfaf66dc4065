package store

import (
	"sort"
	"studyquest_backend/internal/model"
	"sync"
	"time"
)

// MemStore 进程内存储。素材、题目、测验会话、答题记录和成就都按整型自增ID存放，
// 进程退出即丢失。实例在应用装配时创建一次并按句柄传递，测试各自新建实例隔离。
type MemStore struct {
	mu sync.RWMutex

	materials    map[int]model.StudyMaterial
	sessions     map[int]model.QuizSession
	questions    map[int]model.Question
	answers      map[int]model.UserAnswer
	achievements map[int]model.Achievement

	nextMaterialID    int
	nextSessionID     int
	nextQuestionID    int
	nextAnswerID      int
	nextAchievementID int
}

func NewMemStore() *MemStore {
	return &MemStore{
		materials:         make(map[int]model.StudyMaterial),
		sessions:          make(map[int]model.QuizSession),
		questions:         make(map[int]model.Question),
		answers:           make(map[int]model.UserAnswer),
		achievements:      make(map[int]model.Achievement),
		nextMaterialID:    1,
		nextSessionID:     1,
		nextQuestionID:    1,
		nextAnswerID:      1,
		nextAchievementID: 1,
	}
}

// ---- 学习素材 ----

func (s *MemStore) CreateMaterial(m model.StudyMaterial) model.StudyMaterial {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextMaterialID
	s.nextMaterialID++
	m.QuestionsGenerated = 0
	m.UploadedAt = time.Now()
	s.materials[m.ID] = m
	return m
}

func (s *MemStore) GetMaterial(id int) (model.StudyMaterial, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials[id]
	return m, ok
}

func (s *MemStore) ListMaterialsByUser(userID uint) []model.StudyMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.StudyMaterial, 0)
	for _, m := range s.materials {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemStore) DeleteMaterial(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.materials[id]; !ok {
		return false
	}
	delete(s.materials, id)
	return true
}

// AddGeneratedQuestions 素材创建后唯一允许的变更：累加生成题数
func (s *MemStore) AddGeneratedQuestions(materialID, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[materialID]
	if !ok {
		return
	}
	m.QuestionsGenerated += n
	s.materials[materialID] = m
}

// ---- 测验会话 ----

func (s *MemStore) CreateSession(q model.QuizSession) model.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = s.nextSessionID
	s.nextSessionID++
	q.CompletedAt = time.Now()
	s.sessions[q.ID] = q
	return q
}

func (s *MemStore) GetSession(id int) (model.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.sessions[id]
	return q, ok
}

func (s *MemStore) ListSessionsByUser(userID uint) []model.QuizSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.QuizSession, 0)
	for _, q := range s.sessions {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- 题目 ----

func (s *MemStore) CreateQuestion(q model.Question) model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions[q.ID] = q
	return q
}

func (s *MemStore) GetQuestion(id int) (model.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	return q, ok
}

func (s *MemStore) ListQuestionsByMaterial(materialID int) []model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Question, 0)
	for _, q := range s.questions {
		if q.MaterialID == materialID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- 答题记录 ----

func (s *MemStore) CreateAnswer(a model.UserAnswer) model.UserAnswer {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextAnswerID
	s.nextAnswerID++
	a.AnsweredAt = time.Now()
	s.answers[a.ID] = a
	return a
}

func (s *MemStore) ListAnswersByUser(userID uint) []model.UserAnswer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.UserAnswer, 0)
	for _, a := range s.answers {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- 成就 ----

func (s *MemStore) CreateAchievement(a model.Achievement) model.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextAchievementID
	s.nextAchievementID++
	a.EarnedAt = time.Now()
	s.achievements[a.ID] = a
	return a
}

func (s *MemStore) ListAchievementsByUser(userID uint) []model.Achievement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Achievement, 0)
	for _, a := range s.achievements {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasBadge 用户是否已获得某类型徽章，保证徽章按类型幂等发放
func (s *MemStore) HasBadge(userID uint, badgeType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.achievements {
		if a.UserID == userID && a.BadgeType == badgeType {
			return true
		}
	}
	return false
}
