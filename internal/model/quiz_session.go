package model

import "time"

// 测验会话类型
const (
	SessionTypeQuick    = "quick"
	SessionTypeStandard = "standard"
	SessionTypeDeep     = "deep"
)

// QuizSession 测验会话，提交时一次性创建，之后不可变。
// swagger:model QuizSession
type QuizSession struct {
	ID             int       `json:"id"`
	UserID         uint      `json:"userId"`
	MaterialID     int       `json:"materialId,omitempty"`
	SessionType    string    `json:"sessionType"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	Accuracy       int       `json:"accuracy"` // round(100*correct/total)，无题为0
	XPEarned       int       `json:"xpEarned"`
	CompletedAt    time.Time `json:"completedAt"`
}
