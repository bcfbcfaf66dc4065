package service

import (
	"errors"
	"strings"

	"studyquest_backend/internal/config"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/util"
	"studyquest_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 注册登录与JWT签发
type AuthService struct {
	UserRepo *repository.UserRepository
	JWT      config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{UserRepo: userRepo, JWT: jwtCfg}
}

// Signup 注册新用户。用户名取邮箱@前缀。
func (s *AuthService) Signup(email, password, fullName string) (*model.User, string, error) {
	if existing, _ := s.UserRepo.FindByEmail(email); existing != nil {
		return nil, "", util.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username: emailLocalPart(email),
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info("User registered", zap.Uint("userId", user.ID), zap.String("email", email))
	return user, token, nil
}

// Login 邮箱不存在和密码错误返回同一个错误，不泄露账号是否存在
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
