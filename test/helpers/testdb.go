package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"skillboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the password when it is given raw.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("Failed to create user %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser creates a user directly and logs in through the API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	err := CreateUser(t, tx, user)
	require.NoError(t, err, "Creating a test user must not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "Login must succeed. Response: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	require.NoError(t, err, "Failed to parse login JSON")
	require.NotEmpty(t, loginResponse.Token, "Access token must not be empty")

	return loginResponse.Token, user
}

// CreateAndLoginStudent creates a student account with a profile row.
func CreateAndLoginStudent(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User, *models.Student) {
	email := fmt.Sprintf("student_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, tx, email, "password123", models.UserRoleStudent)

	student := &models.Student{
		UserID:   user.ID,
		Bio:      "Test student bio",
		IsPublic: true,
	}
	result := tx.Create(student)
	assert.NoError(t, result.Error, "Failed to create student profile")

	return token, user, student
}

// CreateAndLoginAdmin creates and logs in an admin account.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", models.UserRoleAdmin)
}

// CreateStudent inserts a bare student profile for a fresh user account.
func CreateStudent(t *testing.T, tx *gorm.DB, isPublic bool) *models.Student {
	email := fmt.Sprintf("owner_%d@test.com", time.Now().UnixNano())
	user := &models.User{
		Email:        email,
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
	}
	err := CreateUser(t, tx, user)
	require.NoError(t, err)

	student := &models.Student{
		UserID:   user.ID,
		Bio:      "bio of " + email,
		IsPublic: isPublic,
	}
	result := tx.Create(student)
	require.NoError(t, result.Error, "Failed to create student")

	return student
}

// CreateSkill attaches a named skill to the student.
func CreateSkill(t *testing.T, tx *gorm.DB, studentID, name string) *models.Skill {
	skill := &models.Skill{
		StudentID: studentID,
		Name:      name,
	}
	result := tx.Create(skill)
	require.NoError(t, result.Error, "Failed to create skill")
	return skill
}

// CreateProject attaches a project to the student.
func CreateProject(t *testing.T, tx *gorm.DB, studentID, title string) *models.Project {
	project := &models.Project{
		StudentID: studentID,
		Title:     title,
	}
	result := tx.Create(project)
	require.NoError(t, result.Error, "Failed to create project")
	return project
}

// CreateAward attaches an award to the student.
func CreateAward(t *testing.T, tx *gorm.DB, studentID, title string) *models.Award {
	award := &models.Award{
		StudentID: studentID,
		Title:     title,
	}
	result := tx.Create(award)
	require.NoError(t, result.Error, "Failed to create award")
	return award
}

// CreateEndorsement inserts an endorsement row and bumps the skill counter,
// mirroring what the endorse endpoint does.
func CreateEndorsement(t *testing.T, tx *gorm.DB, skillID, sessionKey string) {
	endorsement := &models.Endorsement{
		SkillID:    skillID,
		SessionKey: sessionKey,
	}
	require.NoError(t, tx.Create(endorsement).Error, "Failed to create endorsement")

	err := tx.Model(&models.Skill{}).Where("id = ?", skillID).
		UpdateColumn("endorsement_count", gorm.Expr("endorsement_count + ?", 1)).Error
	require.NoError(t, err, "Failed to bump endorsement counter")
}
