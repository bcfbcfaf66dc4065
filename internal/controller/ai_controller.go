package controller

import (
	"errors"

	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	ChatService *service.ChatService
}

func NewAIController(chatService *service.ChatService) *AIController {
	return &AIController{ChatService: chatService}
}

// ChatRequest 导师对话请求
// swagger:model ChatRequest
type ChatRequest struct {
	Message    string `json:"message" binding:"required"`
	MaterialID int    `json:"materialId"`
}

// Chat godoc
// @Summary AI导师对话
// @Description materialId可选，提供时把素材正文注入对话上下文
// @Tags AI
// @Accept  json
// @Produce  json
// @Param   body body ChatRequest true "对话内容"
// @Success 200 {object} util.Response{data=object} "导师回复"
// @Failure 400 {object} util.Response "消息为空或AI未配置"
// @Failure 500 {object} util.Response "上游调用失败"
// @Router /api/ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.ChatService.Chat(ctx.Request.Context(), util.CurrentUserID(ctx), req.Message, req.MaterialID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAINotConfigured):
			util.BadRequest(ctx, "AI functionality is not configured")
		case errors.Is(err, util.ErrMaterialNotFound):
			util.NotFound(ctx, "study material not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"response": reply})
}

// SummarizeRequest 摘要请求
// swagger:model SummarizeRequest
type SummarizeRequest struct {
	MaterialID int `json:"materialId" binding:"required"`
}

// Summarize godoc
// @Summary 素材摘要
// @Tags AI
// @Accept  json
// @Produce  json
// @Param   body body SummarizeRequest true "素材ID"
// @Success 200 {object} util.Response{data=object} "摘要文本"
// @Failure 400 {object} util.Response "AI未配置"
// @Failure 404 {object} util.Response "素材不存在"
// @Router /api/ai/summarize [post]
func (c *AIController) Summarize(ctx *gin.Context) {
	var req SummarizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.ChatService.Summarize(ctx.Request.Context(), req.MaterialID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAINotConfigured):
			util.BadRequest(ctx, "AI functionality is not configured")
		case errors.Is(err, util.ErrMaterialNotFound):
			util.NotFound(ctx, "study material not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"summary": summary})
}
