package service

import (
	"errors"

	"studyquest_backend/internal/model"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) Get(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileUpdate 可修改的个人资料字段，nil表示不动
type ProfileUpdate struct {
	FullName           *string
	EmailNotifications *bool
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.EmailNotifications != nil {
		user.EmailNotifications = *update.EmailNotifications
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
