package controller

import (
	"errors"
	"strconv"
	"strings"

	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// ListByMaterial godoc
// @Summary 素材下的题目
// @Tags 题目
// @Produce  json
// @Param   materialId path int true "素材ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response "素材不存在"
// @Router /api/materials/{materialId}/questions [get]
func (c *QuestionController) ListByMaterial(ctx *gin.Context) {
	materialID, err := strconv.Atoi(ctx.Param("materialId"))
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	questions, err := c.QuestionService.ListByMaterial(materialID)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx, "study material not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, questions)
}

// Practice godoc
// @Summary 组卷
// @Description 跨素材抽题：按学科和难度过滤后乱序截取，count缺省15
// @Tags 题目
// @Produce  json
// @Param   subject query string false "学科，all或留空不过滤"
// @Param   difficulty query string false "难度，all或留空不过滤"
// @Param   count query int false "题数上限"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) Practice(ctx *gin.Context) {
	subject := normalizeFilter(ctx.Query("subject"))
	difficulty := normalizeFilter(ctx.Query("difficulty"))

	count := 0
	if raw := ctx.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid count")
			return
		}
		count = n
	}

	util.Success(ctx, c.QuestionService.Practice(util.CurrentUserID(ctx), subject, difficulty, count))
}

// "all"等同于不过滤
func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
