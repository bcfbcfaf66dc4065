package controller

import (
	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// ListAchievements godoc
// @Summary 已获得的徽章
// @Tags 成就
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /api/achievements [get]
func (c *AchievementController) ListAchievements(ctx *gin.Context) {
	util.Success(ctx, c.AchievementService.ListByUser(util.CurrentUserID(ctx)))
}
