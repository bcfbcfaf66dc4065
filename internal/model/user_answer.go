package model

import "time"

// swagger:model UserAnswer
type UserAnswer struct {
	ID              int       `json:"id"`
	UserID          uint      `json:"userId"`
	QuestionID      int       `json:"questionId"`
	SessionID       int       `json:"sessionId"`
	SelectedAnswer  int       `json:"selectedAnswer"`
	IsCorrect       bool      `json:"isCorrect"`
	ConfidenceLevel int       `json:"confidenceLevel"` // 1-5
	AnsweredAt      time.Time `json:"answeredAt"`
}
