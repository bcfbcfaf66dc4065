package service

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/util"
	"studyquest_backend/pkg/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ProcessedFile 内容提取结果
type ProcessedFile struct {
	Content  string
	FileType string
	FileName string
	FileSize int64
}

// ExtractService 从上传文件中提取纯文本并判定内容类别。
// PDF走文本提取，text/*直接按UTF-8解码，image/*暂不做OCR返回空内容。
type ExtractService struct{}

func NewExtractService() *ExtractService {
	return &ExtractService{}
}

func (s *ExtractService) ProcessFile(data []byte, mimeType, fileName string) (*ProcessedFile, error) {
	logger.Log.Info("Processing file",
		zap.String("name", fileName),
		zap.String("type", mimeType),
		zap.Int("size", len(data)))

	var content string
	fileType := model.FileTypeText

	switch {
	case mimeType == "application/pdf":
		text, err := extractPDF(data)
		if err != nil {
			logger.Log.Error("PDF parsing error", zap.Error(err))
			return nil, fmt.Errorf("%w: failed to extract text from PDF, the file may be corrupted", util.ErrNoExtractableText)
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("PDF appears to be empty: %w", util.ErrNoExtractableText)
		}
		content = text
		fileType = model.FileTypePDF
		logger.Log.Info("Extracted text from PDF", zap.Int("chars", len(content)))

	case strings.HasPrefix(mimeType, "text/"):
		content = string(data)
		fileType = model.FileTypeText

	case strings.HasPrefix(mimeType, "image/"):
		// OCR尚未实现，返回空内容由用户手动补充
		content = ""
		fileType = model.FileTypeImage
		logger.Log.Info("Image file detected, OCR not implemented yet", zap.String("name", fileName))

	default:
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedFileType, mimeType)
	}

	return &ProcessedFile{
		Content:  strings.TrimSpace(content),
		FileType: fileType,
		FileName: fileName,
		FileSize: int64(len(data)),
	}, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

// 文件名先于内容判定，顺序固定，首个命中生效
var filenameSubjectHints = []struct {
	patterns []string
	subject  string
}{
	{[]string{"biology", "bio"}, "Biology"},
	{[]string{"chemistry", "chem"}, "Chemistry"},
	{[]string{"physics", "phys"}, "Physics"},
	{[]string{"math", "calc"}, "Mathematics"},
	{[]string{"history", "hist"}, "History"},
	{[]string{"english", "literature"}, "English"},
}

var contentSubjectKeywords = []struct {
	subject  string
	keywords []string
}{
	{"Biology", []string{"cell", "dna", "protein", "organism", "gene", "photosynthesis", "mitosis", "evolution"}},
	{"Chemistry", []string{"molecule", "atom", "chemical", "reaction", "element", "compound", "periodic"}},
	{"Physics", []string{"force", "energy", "momentum", "velocity", "acceleration", "mass", "gravity", "wave"}},
	{"Mathematics", []string{"equation", "function", "derivative", "integral", "theorem", "proof", "variable"}},
	{"History", []string{"century", "war", "empire", "revolution", "king", "queen", "ancient", "medieval"}},
}

// InferSubject 依据文件名和正文猜测学科，均未命中返回"Other"
func (s *ExtractService) InferSubject(fileName, content string) string {
	lowerFileName := strings.ToLower(fileName)
	for _, hint := range filenameSubjectHints {
		for _, p := range hint.patterns {
			if strings.Contains(lowerFileName, p) {
				return hint.subject
			}
		}
	}

	lowerContent := strings.ToLower(content)
	for _, entry := range contentSubjectKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowerContent, kw) {
				return entry.subject
			}
		}
	}

	return "Other"
}

// TitleFromFilename 由文件名合成标题：去扩展名、分隔符转空格、单词首字母大写
func (s *ExtractService) TitleFromFilename(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
