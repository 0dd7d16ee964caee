package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":    "newstudent@test.com",
		"password": "super_password123",
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", registerBody)

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, bodyStr, "access_token")
	assert.Contains(t, bodyStr, "refresh_token")
	assert.Contains(t, bodyStr, `"role":"student"`)

	// Registration creates the profile row right away.
	var user models.User
	require.NoError(t, tx.Where("email = ?", "newstudent@test.com").First(&user).Error)
	var count int64
	tx.Model(&models.Student{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count, "Registration must create a student profile")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "duplicate@test.com",
		PasswordHash: "pass12345",
		Role:         models.UserRoleStudent,
	})
	require.NoError(t, err)

	duplicateBody := map[string]interface{}{
		"email":    "duplicate@test.com",
		"password": "password_is_long_enough_123",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", duplicateBody)

	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "Email already exists")
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "short@test.com",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "password")
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "success@test.com",
		PasswordHash: "correct-password",
		Role:         models.UserRoleStudent,
	})
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "success@test.com",
		"password": "correct-password",
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "access_token")
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "badpass@test.com",
		PasswordHash: "correct-password",
		Role:         models.UserRoleStudent,
	})
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "badpass@test.com",
		"password": "WRONG-password",
	})

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid email or password")
}

func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "rotate@test.com",
		"password": "super_password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var reg struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &reg))

	// First refresh succeeds and hands out a new pair.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "access_token")

	// The presented token is single-use.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired token")
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "logout@test.com",
		"password": "super_password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var reg struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &reg))

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/logout", "", map[string]interface{}{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestDeleteExpired_PurgesOnlyExpiredRefreshTokens(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	user := &models.User{
		Email:        "tokens@test.com",
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
	}
	require.NoError(t, helpers.CreateUser(t, tx, user))

	expired := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	valid := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "valid-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tx.Create(expired).Error)
	require.NoError(t, tx.Create(valid).Error)

	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	require.NoError(t, refreshTokenRepo.DeleteExpired(tx))

	var tokens []models.RefreshToken
	require.NoError(t, tx.Where("user_id = ?", user.ID).Find(&tokens).Error)
	require.Len(t, tokens, 1, "Only the live token may survive the sweep")
	assert.Equal(t, "valid-token", tokens[0].Token)
}
