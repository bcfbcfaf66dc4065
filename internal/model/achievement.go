package model

import "time"

// 徽章类型
const (
	BadgeFirstUpload       = "first_upload"
	BadgeQuizMaster        = "quiz_master"
	BadgeConsistentLearner = "consistent_learner"
)

// swagger:model Achievement
type Achievement struct {
	ID        int       `json:"id"`
	UserID    uint      `json:"userId"`
	BadgeType string    `json:"badgeType"`
	EarnedAt  time.Time `json:"earnedAt"`
}
