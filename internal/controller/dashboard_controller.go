package controller

import (
	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Stats godoc
// @Summary 面板统计
// @Description 素材数、答题数、总准确率、XP、连续天数和近期活动
// @Tags 面板
// @Produce  json
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Router /api/dashboard-stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	util.Success(ctx, c.DashboardService.Stats(util.CurrentUserID(ctx)))
}

// Progress godoc
// @Summary 学习进度
// @Description 按学科的成绩拆分和逐次会话的成绩曲线
// @Tags 面板
// @Produce  json
// @Success 200 {object} util.Response{data=service.ProgressReport}
// @Router /api/progress [get]
func (c *DashboardController) Progress(ctx *gin.Context) {
	util.Success(ctx, c.DashboardService.Progress(util.CurrentUserID(ctx)))
}
