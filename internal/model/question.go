package model

// 题目难度
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// swagger:model Question
type Question struct {
	ID            int      `json:"id"`
	MaterialID    int      `json:"materialId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // 正确选项下标
	Difficulty    string   `json:"difficulty"`
	Subject       string   `json:"subject"`
}
