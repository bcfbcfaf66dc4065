// 手动触发题目生成脚本
//
// 主应用在上传时自动生成题目；此脚本用于在不起服务的情况下
// 验证提取和生成链路，例如调试新的提示词或排查某个文件的提取问题。
//
// 用法: go run scripts/generate_questions.go -file notes.pdf [-subject Biology] [-count 5]

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"studyquest_backend/internal/config"
	"studyquest_backend/internal/service"
	"studyquest_backend/pkg/logger"
)

func main() {
	filePath := flag.String("file", "", "要处理的文件路径")
	subject := flag.String("subject", "", "学科，留空自动推断")
	count := flag.Int("count", 5, "生成题数")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("用法: go run scripts/generate_questions.go -file <path>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	logger.InitLogger(cfg)

	fileData, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("读取文件失败: %v", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(*filePath))
	if mimeType == "" {
		mimeType = "text/plain"
	}

	extract := service.NewExtractService()
	processed, err := extract.ProcessFile(fileData, mimeType, filepath.Base(*filePath))
	if err != nil {
		log.Fatalf("内容提取失败: %v", err)
	}

	if *subject == "" {
		*subject = extract.InferSubject(filepath.Base(*filePath), processed.Content)
	}
	fmt.Printf("提取正文 %d 字符，学科: %s\n", len(processed.Content), *subject)

	ai := service.NewAIService(cfg.AI)
	if !ai.Configured() {
		log.Fatal("AI未配置，请在 configs/config.yaml 或 OPENAI_API_KEY 中设置API Key")
	}

	questions, err := ai.GenerateQuestions(context.Background(), processed.Content, *subject, *count)
	if err != nil {
		log.Fatalf("题目生成失败: %v", err)
	}

	out, _ := json.MarshalIndent(questions, "", "  ")
	fmt.Println(string(out))
}
