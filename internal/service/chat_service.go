package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studyquest_backend/internal/store"
	"studyquest_backend/internal/util"
	"studyquest_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// 滚动上下文保留最近10轮问答
	chatHistoryTurns = 10
	chatHistoryTTL   = 24 * time.Hour
)

// ChatService AI导师对话编排。Redis可选：配置了就带滚动历史，
// 没配置每轮都是单轮对话。
type ChatService struct {
	AI    *AIService
	Store *store.MemStore
	Redis *redis.Client // 可为nil
}

func NewChatService(ai *AIService, s *store.MemStore, rdb *redis.Client) *ChatService {
	return &ChatService{AI: ai, Store: s, Redis: rdb}
}

// Chat 处理一轮导师对话。materialID>0时注入对应素材正文作为上下文。
func (s *ChatService) Chat(ctx context.Context, userID uint, message string, materialID int) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required")
	}
	if !s.AI.Configured() {
		return "", util.ErrAINotConfigured
	}

	var materialContent string
	if materialID > 0 {
		material, ok := s.Store.GetMaterial(materialID)
		if !ok {
			return "", util.ErrMaterialNotFound
		}
		materialContent = material.Content
	}

	history := s.loadHistory(ctx, userID)

	reply, err := s.AI.TutorChat(ctx, message, materialContent, history)
	if err != nil {
		return "", err
	}

	s.appendHistory(ctx, userID,
		AIChatMessage{Role: "user", Content: message},
		AIChatMessage{Role: "assistant", Content: reply})

	return reply, nil
}

// Summarize 生成素材摘要
func (s *ChatService) Summarize(ctx context.Context, materialID int) (string, error) {
	if !s.AI.Configured() {
		return "", util.ErrAINotConfigured
	}
	material, ok := s.Store.GetMaterial(materialID)
	if !ok {
		return "", util.ErrMaterialNotFound
	}
	return s.AI.Summarize(ctx, material.Content, material.Subject)
}

func chatHistoryKey(userID uint) string {
	return fmt.Sprintf("chat:history:%d", userID)
}

func (s *ChatService) loadHistory(ctx context.Context, userID uint) []AIChatMessage {
	if s.Redis == nil {
		return nil
	}

	entries, err := s.Redis.LRange(ctx, chatHistoryKey(userID), 0, -1).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Failed to load chat history", zap.Error(err))
		}
		return nil
	}

	history := make([]AIChatMessage, 0, len(entries))
	for _, entry := range entries {
		var msg AIChatMessage
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			continue
		}
		history = append(history, msg)
	}
	return history
}

// appendHistory 历史读写失败只降级为无上下文对话，从不影响本轮回复
func (s *ChatService) appendHistory(ctx context.Context, userID uint, messages ...AIChatMessage) {
	if s.Redis == nil {
		return
	}

	key := chatHistoryKey(userID)
	pipe := s.Redis.Pipeline()
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.LTrim(ctx, key, -int64(chatHistoryTurns*2), -1)
	pipe.Expire(ctx, key, chatHistoryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("Failed to persist chat history", zap.Error(err))
	}
}
