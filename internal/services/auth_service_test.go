package services

import (
	"testing"
	"time"

	"github.com/courier-app/courier-backend/internal/config"
	"github.com/courier-app/courier-backend/internal/dto"
	"github.com/courier-app/courier-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.RefreshToken{}))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	return NewAuthService(db, cfg), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	login, err := svc.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// the presented token is spent after rotation
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccountFlagsUser(t *testing.T) {
	svc, db := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAccount(resp.User.ID, "wrongpassword"), ErrInvalidCredentials)
	require.NoError(t, svc.DeleteAccount(resp.User.ID, "supersecret1"))

	// the row stays, flagged, so moderation joins keep working
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", resp.User.ID).Error)
	assert.True(t, user.Deleted)

	_, err = svc.Login(&dto.LoginRequest{
		Email:    "dave@example.com",
		Password: "supersecret1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
