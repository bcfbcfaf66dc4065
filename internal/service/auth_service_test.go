package service

import (
	"errors"
	"testing"
	"time"

	"studyquest_backend/internal/config"
	"studyquest_backend/internal/model"
	"studyquest_backend/internal/repository"
	"studyquest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	return NewAuthService(repository.NewUserRepository(db), config.JWTConfig{
		Secret:     "test-secret-test-secret-test-secret",
		ExpireTime: time.Hour,
	})
}

func TestSignupAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, token, err := svc.Signup("alex@example.com", "password123", "Alex Doe")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alex", user.Username)
	assert.Equal(t, "Alex Doe", user.FullName)
	assert.NotEqual(t, "password123", user.Password)

	// Token携带正确的身份
	claims, err := util.ParseJWT(token, svc.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alex@example.com", claims.Email)

	loggedIn, loginToken, err := svc.Login("alex@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Signup("alex@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = svc.Signup("alex@example.com", "otherpass", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrUserExists))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Signup("alex@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = svc.Login("alex@example.com", "wrong")
	assert.True(t, errors.Is(err, util.ErrInvalidCredentials))

	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.True(t, errors.Is(err, util.ErrInvalidCredentials))
}
