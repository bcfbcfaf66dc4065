package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"studyquest_backend/internal/config"
	"studyquest_backend/internal/util"
	"sync"
	"time"
)

// AIService 封装OpenAI兼容的chat-completions接口，
// 负责题目生成、AI导师对话和素材摘要三类调用。
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig 配置热更新入口（configwatcher回调）
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// Configured API Key是否可用，占位符视为未配置
func (s *AIService) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.APIKey != "" && s.config.APIKey != "your_openai_api_key_here"
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeneratedQuestion 生成服务约定的题目JSON结构
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
	Subject       string   `json:"subject"`
}

func (s *AIService) complete(ctx context.Context, messages []AIChatMessage, temperature float64, maxTokens int) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	reqBody := ChatCompletionRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", util.ErrEmptyAIResponse
	}

	return result.Choices[0].Message.Content, nil
}

// GenerateQuestions 基于素材内容生成count道选择题。
// 服务必须返回合法JSON数组，解析失败直接报错，不做修复重试。
func (s *AIService) GenerateQuestions(ctx context.Context, content, subject string, count int) ([]GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`
Based on the following study material, generate %d multiple-choice questions.

CONTENT:
%s

REQUIREMENTS:
- Create questions that test understanding of key concepts
- Mix difficulty levels: beginner, intermediate, advanced
- Each question should have 4 options (A, B, C, D)
- Clearly indicate the correct answer
- Subject area: %s

FORMAT your response as a JSON array like this:
[
  {
    "question": "What is the main function of...?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 1,
    "difficulty": "beginner",
    "subject": "%s"
  }
]

Generate exactly %d questions:`, count, content, subject, subject, count)

	messages := []AIChatMessage{
		{
			Role:    "system",
			Content: "You are an expert educator who creates high-quality multiple-choice questions. Always respond with valid JSON.",
		},
		{
			Role:    "user",
			Content: prompt,
		},
	}

	raw, err := s.complete(ctx, messages, 0.7, 2000)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(stripJSONFence(raw)), &questions); err != nil {
		return nil, fmt.Errorf("failed to generate questions: invalid JSON from AI: %w", err)
	}

	for i, q := range questions {
		if q.Question == "" || len(q.Options) == 0 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("failed to generate questions: question %d has invalid shape", i)
		}
	}

	return questions, nil
}

// TutorChat AI导师对话。materialContent非空时注入素材上下文，history按时间序追加在新消息之前。
func (s *AIService) TutorChat(ctx context.Context, userMessage, materialContent string, history []AIChatMessage) (string, error) {
	systemPrompt := "You are an AI tutor helping students understand their study materials. \n" +
		"Be helpful, encouraging, and educational. Explain concepts clearly and provide examples when helpful."
	if materialContent != "" {
		systemPrompt += fmt.Sprintf("\n\nCONTEXT FROM STUDENT'S MATERIAL:\n%s", materialContent)
	}

	messages := []AIChatMessage{{Role: "system", Content: systemPrompt}}
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: userMessage})

	reply, err := s.complete(ctx, messages, 0.7, 1000)
	if err != nil {
		return "", fmt.Errorf("failed to get tutor response: %w", err)
	}
	return reply, nil
}

// Summarize 单轮摘要，无历史
func (s *AIService) Summarize(ctx context.Context, content, subject string) (string, error) {
	prompt := fmt.Sprintf(`Summarize the following %s study material in a clear, concise way.
Highlight the key concepts and main points:

%s`, subject, content)

	messages := []AIChatMessage{
		{Role: "system", Content: "You are an expert at creating clear, educational summaries."},
		{Role: "user", Content: prompt},
	}

	summary, err := s.complete(ctx, messages, 0.5, 800)
	if err != nil {
		return "", fmt.Errorf("failed to summarize content: %w", err)
	}
	return summary, nil
}

// stripJSONFence 去掉模型偶尔包裹的```json代码栅栏，除此之外不做任何修复
func stripJSONFence(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	}
	return strings.TrimSpace(t)
}
