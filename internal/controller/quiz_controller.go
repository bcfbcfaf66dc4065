package controller

import (
	"strconv"

	"studyquest_backend/internal/model"
	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// ListSessions godoc
// @Summary 测验会话列表
// @Tags 测验
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.QuizSession}
// @Router /api/quiz-sessions [get]
func (c *QuizController) ListSessions(ctx *gin.Context) {
	util.Success(ctx, c.QuizService.ListByUser(util.CurrentUserID(ctx)))
}

// CreateSessionRequest 提交一次完成的测验
// swagger:model CreateSessionRequest
type CreateSessionRequest struct {
	MaterialID     int    `json:"materialId"`
	SessionType    string `json:"sessionType"`
	TotalQuestions int    `json:"totalQuestions" binding:"required"`
	CorrectAnswers int    `json:"correctAnswers"`
	XPEarned       int    `json:"xpEarned"`
}

// CreateSession godoc
// @Summary 记录测验结果
// @Description 准确率由服务端重算，XP计入用户账户
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   body body CreateSessionRequest true "测验结果"
// @Success 201 {object} util.Response{data=model.QuizSession}
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/quiz-sessions [post]
func (c *QuizController) CreateSession(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.QuizService.CreateSession(util.CurrentUserID(ctx), model.QuizSession{
		MaterialID:     req.MaterialID,
		SessionType:    req.SessionType,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
		XPEarned:       req.XPEarned,
	})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, session)
}

// RecordAnswerRequest 单题作答
// swagger:model RecordAnswerRequest
type RecordAnswerRequest struct {
	QuestionID      int `json:"questionId" binding:"required"`
	SelectedAnswer  int `json:"selectedAnswer"`
	ConfidenceLevel int `json:"confidenceLevel" binding:"required,min=1,max=5"`
}

// RecordAnswer godoc
// @Summary 记录单题作答
// @Description 正确与否由服务端比对题目答案得出
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body RecordAnswerRequest true "作答内容"
// @Success 201 {object} util.Response{data=model.UserAnswer}
// @Failure 400 {object} util.Response "参数错误或选项越界"
// @Router /api/quiz-sessions/{id}/answers [post]
func (c *QuizController) RecordAnswer(ctx *gin.Context) {
	sessionID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var req RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.QuizService.RecordAnswer(util.CurrentUserID(ctx), sessionID, req.QuestionID, req.SelectedAnswer, req.ConfidenceLevel)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, answer)
}
