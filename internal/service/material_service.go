package service

import (
	"bytes"
	"context"
	"strings"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/store"
	"studyquest_backend/internal/util"
	"studyquest_backend/pkg/logger"
	"studyquest_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// 生成环节的三种结局，素材创建成功与否与其无关
type GenerationOutcome string

const (
	OutcomeGenerated GenerationOutcome = "generated"
	OutcomeSkipped   GenerationOutcome = "skipped"
	OutcomeFailed    GenerationOutcome = "failed"
)

const (
	// 正文低于该长度不值得出题
	minContentForGeneration = 50
	// 每次上传固定生成题数
	questionsPerUpload = 5
)

// UploadResult 上传管线的完整结果
type UploadResult struct {
	Material           model.StudyMaterial `json:"material"`
	QuestionsGenerated int                 `json:"questionsGenerated"`
	Outcome            GenerationOutcome   `json:"outcome"`
	SkipReason         string              `json:"skipReason,omitempty"`
}

// MaterialService 学习素材管线：提取正文、补全标题学科、入库、
// 归档原始文件，最后尽力生成题目。生成失败不影响素材本身。
type MaterialService struct {
	Store       *store.MemStore
	Extract     *ExtractService
	AI          *AIService
	Storage     *StorageService
	Achievement *AchievementService
	MaxFileSize int64
}

func NewMaterialService(s *store.MemStore, extract *ExtractService, ai *AIService, storage *StorageService, achievement *AchievementService, maxSizeMB int64) *MaterialService {
	return &MaterialService{
		Store:       s,
		Extract:     extract,
		AI:          ai,
		Storage:     storage,
		Achievement: achievement,
		MaxFileSize: maxSizeMB * 1024 * 1024,
	}
}

// Upload 处理一次文件上传。手工提供的content优先于提取结果，
// title/subject为空时自动推断；补全后三者仍有空缺则整个请求失败，不落库。
func (s *MaterialService) Upload(ctx context.Context, userID uint, data []byte, mimeType, fileName, title, subject, manualContent string) (*UploadResult, error) {
	if int64(len(data)) > s.MaxFileSize {
		return nil, util.ErrFileTooLarge
	}
	if err := util.CheckUploadType(mimeType); err != nil {
		return nil, err
	}

	processed, err := s.Extract.ProcessFile(data, mimeType, fileName)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(manualContent)
	if content == "" {
		content = processed.Content
	}
	if title == "" {
		title = s.Extract.TitleFromFilename(fileName)
	}
	if subject == "" {
		subject = s.Extract.InferSubject(fileName, content)
	}

	return s.create(ctx, userID, title, subject, processed.FileType, content, func() {
		s.archiveOriginal(ctx, data, mimeType, fileName)
	})
}

// CreateManual 手工录入素材（无文件），生成环节与上传路径一致
func (s *MaterialService) CreateManual(ctx context.Context, userID uint, title, subject, fileType, content string) (*UploadResult, error) {
	if fileType == "" {
		fileType = model.FileTypeText
	}
	return s.create(ctx, userID, title, subject, fileType, strings.TrimSpace(content), nil)
}

// create 两条入口的公共尾段：校验、落库、归档、尽力生成
func (s *MaterialService) create(ctx context.Context, userID uint, title, subject, fileType, content string, archive func()) (*UploadResult, error) {
	if title == "" || subject == "" || content == "" {
		return nil, util.ErrMissingMaterialFields
	}

	material := s.Store.CreateMaterial(model.StudyMaterial{
		UserID:   userID,
		Title:    title,
		Subject:  subject,
		FileType: fileType,
		Content:  content,
	})

	if archive != nil {
		archive()
	}
	s.Achievement.OnMaterialUploaded(userID)

	result := &UploadResult{Material: material}
	result.Outcome, result.SkipReason, result.QuestionsGenerated = s.generateForMaterial(ctx, &material)
	result.Material.QuestionsGenerated = result.QuestionsGenerated
	monitoring.QuestionGenerations.WithLabelValues(string(result.Outcome)).Inc()

	return result, nil
}

func (s *MaterialService) ListByUser(userID uint) []model.StudyMaterial {
	return s.Store.ListMaterialsByUser(userID)
}

func (s *MaterialService) Get(id int) (model.StudyMaterial, error) {
	m, ok := s.Store.GetMaterial(id)
	if !ok {
		return model.StudyMaterial{}, util.ErrMaterialNotFound
	}
	return m, nil
}

// Delete 仅允许删除自己的素材，素材下的题目保留（历史会话仍引用它们）
func (s *MaterialService) Delete(userID uint, id int) error {
	m, ok := s.Store.GetMaterial(id)
	if !ok || m.UserID != userID {
		return util.ErrMaterialNotFound
	}
	s.Store.DeleteMaterial(id)
	return nil
}

// generateForMaterial 尽力生成。返回结局、跳过原因（仅skipped时非空）和实际入库题数。
func (s *MaterialService) generateForMaterial(ctx context.Context, material *model.StudyMaterial) (GenerationOutcome, string, int) {
	if !s.AI.Configured() {
		logger.Log.Info("Skipping question generation, AI not configured",
			zap.Int("materialId", material.ID))
		return OutcomeSkipped, "no_api_key", 0
	}
	if len(material.Content) <= minContentForGeneration {
		logger.Log.Info("Skipping question generation, content too short",
			zap.Int("materialId", material.ID),
			zap.Int("chars", len(material.Content)))
		return OutcomeSkipped, "content_too_short", 0
	}

	generated, err := s.AI.GenerateQuestions(ctx, material.Content, material.Subject, questionsPerUpload)
	if err != nil {
		logger.Log.Error("Question generation failed",
			zap.Int("materialId", material.ID),
			zap.Error(err))
		return OutcomeFailed, "", 0
	}

	for _, q := range generated {
		s.Store.CreateQuestion(model.Question{
			MaterialID:    material.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    q.Difficulty,
			Subject:       q.Subject,
		})
	}
	s.Store.AddGeneratedQuestions(material.ID, len(generated))

	logger.Log.Info("Questions generated",
		zap.Int("materialId", material.ID),
		zap.Int("count", len(generated)))
	return OutcomeGenerated, "", len(generated)
}

// archiveOriginal 原始文件归档失败只记日志
func (s *MaterialService) archiveOriginal(ctx context.Context, data []byte, mimeType, fileName string) {
	if s.Storage == nil {
		return
	}
	objectName := MaterialObjectName(fileName)
	if _, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		logger.Log.Warn("Failed to archive original upload",
			zap.String("object", objectName),
			zap.Error(err))
	}
}

// SubjectsOf 用户已上传素材的去重学科列表，保持首次出现顺序
func (s *MaterialService) SubjectsOf(userID uint) []string {
	seen := make(map[string]bool)
	subjects := make([]string, 0)
	for _, m := range s.Store.ListMaterialsByUser(userID) {
		key := strings.ToLower(m.Subject)
		if !seen[key] {
			seen[key] = true
			subjects = append(subjects, m.Subject)
		}
	}
	return subjects
}
