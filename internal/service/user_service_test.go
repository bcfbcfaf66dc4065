package service

import (
	"errors"
	"testing"

	"studyquest_backend/internal/model"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newUserService(t *testing.T) (*UserService, *model.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	user := &model.User{Username: "alex", Email: "alex@example.com", Password: "x", FullName: "Alex", EmailNotifications: true}
	require.NoError(t, db.Create(user).Error)

	return NewUserService(repository.NewUserRepository(db)), user
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Get(999)
	assert.True(t, errors.Is(err, util.ErrUserNotFound))
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, user := newUserService(t)

	name := "Alex Doe"
	updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", updated.FullName)
	assert.True(t, updated.EmailNotifications) // 未提供的字段保持不变

	off := false
	updated, err = svc.UpdateProfile(user.ID, ProfileUpdate{EmailNotifications: &off})
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", updated.FullName)
	assert.False(t, updated.EmailNotifications)
}
