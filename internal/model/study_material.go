package model

import "time"

// 素材内容类别
const (
	FileTypePDF   = "pdf"
	FileTypeText  = "text"
	FileTypeImage = "image"
)

// StudyMaterial 学习素材。除生成题数外创建后不再变更。
// swagger:model StudyMaterial
type StudyMaterial struct {
	ID                 int       `json:"id"`
	UserID             uint      `json:"userId"`
	Title              string    `json:"title"`
	Subject            string    `json:"subject"`
	FileType           string    `json:"fileType"`
	Content            string    `json:"content"`
	QuestionsGenerated int       `json:"questionsGenerated"`
	UploadedAt         time.Time `json:"uploadedAt"`
}
