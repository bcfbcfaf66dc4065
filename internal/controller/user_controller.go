package controller

import (
	"errors"

	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetCurrentUser godoc
// @Summary 当前用户
// @Description 返回Token对应的用户，无Token时返回演示账号
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/user [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, err := c.UserService.Get(util.CurrentUserID(ctx))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "user not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// UpdateProfileRequest 个人资料更新，缺省字段保持不变
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FullName           *string `json:"fullName"`
	EmailNotifications *bool   `json:"emailNotifications"`
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   body body UpdateProfileRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(util.CurrentUserID(ctx), service.ProfileUpdate{
		FullName:           req.FullName,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "user not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}
