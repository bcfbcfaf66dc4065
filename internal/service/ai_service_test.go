package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyquest_backend/internal/config"
	"studyquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAI(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAIService(config.AIConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func completionWith(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewAIService(config.AIConfig{}).Configured())
	assert.False(t, NewAIService(config.AIConfig{APIKey: "your_openai_api_key_here"}).Configured())
	assert.True(t, NewAIService(config.AIConfig{APIKey: "sk-real"}).Configured())
}

func TestGenerateQuestions(t *testing.T) {
	payload := `[{"question":"What is a cell?","options":["A","B","C","D"],"correctAnswer":1,"difficulty":"beginner","subject":"Biology"}]`
	ai := stubAI(t, completionWith(payload))

	questions, err := ai.GenerateQuestions(context.Background(), "cells and dna", "Biology", 1)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is a cell?", questions[0].Question)
	assert.Equal(t, 1, questions[0].CorrectAnswer)
	assert.Equal(t, "beginner", questions[0].Difficulty)
}

func TestGenerateQuestionsFencedJSON(t *testing.T) {
	payload := "```json\n[{\"question\":\"Q\",\"options\":[\"A\",\"B\"],\"correctAnswer\":0,\"difficulty\":\"advanced\",\"subject\":\"Physics\"}]\n```"
	ai := stubAI(t, completionWith(payload))

	questions, err := ai.GenerateQuestions(context.Background(), "content", "Physics", 1)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q", questions[0].Question)
}

func TestGenerateQuestionsMalformedJSON(t *testing.T) {
	ai := stubAI(t, completionWith("Here are your questions: 1) What is..."))

	_, err := ai.GenerateQuestions(context.Background(), "content", "Biology", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestGenerateQuestionsInvalidShape(t *testing.T) {
	// correctAnswer越界
	payload := `[{"question":"Q","options":["A","B"],"correctAnswer":5,"difficulty":"beginner","subject":"Biology"}]`
	ai := stubAI(t, completionWith(payload))

	_, err := ai.GenerateQuestions(context.Background(), "content", "Biology", 1)
	require.Error(t, err)
}

func TestCompleteUpstreamError(t *testing.T) {
	ai := stubAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	_, err := ai.TutorChat(context.Background(), "hi", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteEmptyChoices(t *testing.T) {
	ai := stubAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := ai.Summarize(context.Background(), "content", "Biology")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrEmptyAIResponse))
}

func TestTutorChatMessageOrder(t *testing.T) {
	var captured ChatCompletionRequest
	ai := stubAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		completionWith("sure!")(w, r)
	})

	history := []AIChatMessage{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	reply, err := ai.TutorChat(context.Background(), "new question", "material text", history)
	require.NoError(t, err)
	assert.Equal(t, "sure!", reply)

	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "material text")
	assert.Equal(t, "earlier question", captured.Messages[1].Content)
	assert.Equal(t, "earlier answer", captured.Messages[2].Content)
	assert.Equal(t, "new question", captured.Messages[3].Content)
}

func TestUpdateConfig(t *testing.T) {
	ai := NewAIService(config.AIConfig{})
	assert.False(t, ai.Configured())

	ai.UpdateConfig(config.AIConfig{APIKey: "sk-new", BaseURL: "http://x", Model: "m"})
	assert.True(t, ai.Configured())
}
