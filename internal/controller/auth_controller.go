package controller

import (
	"errors"

	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// SignupRequest 注册请求
// swagger:model SignupRequest
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName"`
}

// Signup godoc
// @Summary 注册新用户
// @Description 邮箱注册，用户名自动取邮箱@前缀
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignupRequest true "注册信息"
// @Success 200 {object} util.Response{data=object} "用户和Token"
// @Failure 400 {object} util.Response "参数错误或邮箱已注册"
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Signup(req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, util.ErrUserExists) {
			util.BadRequest(ctx, "user with this email already exists")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"user": user, "token": token})
}

// LoginRequest 登录请求
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭证"
// @Success 200 {object} util.Response{data=object} "用户和Token"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx, "invalid email or password")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"user": user, "token": token})
}
