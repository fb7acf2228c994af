package auth

import (
	"fmt"
	"testing"

	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.UserSession{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return NewService(db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testService(t)

	user, err := svc.Register(&RegisterDTO{Email: "Ada@Example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "ada", user.Name)
	assert.NotEqual(t, "hunter22", user.Password)

	token, logged, err := svc.Login("ada@example.com", "hunter22", "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := middleware.ValidateTokenClaims(svc.db, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := testService(t)

	_, err := svc.Register(&RegisterDTO{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterDTO{Email: "ADA@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := testService(t)

	_, err := svc.Register(&RegisterDTO{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.Login("ada@example.com", "wrong", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "hunter22", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := testService(t)

	user, err := svc.Register(&RegisterDTO{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	token, _, err := svc.Login(user.Email, "hunter22", "", "")
	require.NoError(t, err)

	claims, err := middleware.ValidateTokenClaims(svc.db, token)
	require.NoError(t, err)

	require.NoError(t, session.Revoke(svc.db, claims.UserID, claims.SessionID))

	_, err = middleware.ValidateTokenClaims(svc.db, token)
	assert.Error(t, err)
}

func TestEnsureDevUserIdempotent(t *testing.T) {
	svc := testService(t)

	first, err := svc.EnsureDevUser("local@smartnotes.dev")
	require.NoError(t, err)
	second, err := svc.EnsureDevUser("local@smartnotes.dev")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
