package service

import (
	"testing"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/internal/db"
	"github.com/arteliving/arteliving-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, err := authService.Register("ana@example.com", "password123", "Ana Pereira", "+351 912 345 678")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	// Duplicate email is rejected.
	_, err = authService.Register("ana@example.com", "other", "Someone Else", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register("ana@example.com", "password123", "Ana Pereira", "")
	require.NoError(t, err)

	user, tokens, err := authService.Login("ana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleCustomer), claims.Role)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register("ana@example.com", "password123", "Ana Pereira", "")
	require.NoError(t, err)

	_, _, err = authService.Login("ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, err := authService.Register("ana@example.com", "password123", "Ana Pereira", "")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "Ana P.", "+351 900 000 000")
	require.NoError(t, err)
	assert.Equal(t, "Ana P.", updated.Name)
	assert.Equal(t, "+351 900 000 000", updated.Phone)

	_, err = authService.UpdateProfile(9999, "Ghost", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
