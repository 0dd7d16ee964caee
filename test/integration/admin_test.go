package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"skillboard_backend/internal/models"
	"skillboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSignup_IsOpen(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/signup", "", map[string]interface{}{
		"email":    "newadmin@test.com",
		"password": "admin_password123",
	})

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, bodyStr, `"role":"admin"`)

	var user models.User
	require.NoError(t, tx.Where("email = ?", "newadmin@test.com").First(&user).Error)
	assert.Equal(t, models.UserRoleAdmin, user.Role)
}

func TestAdminDashboard_Counts(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	public := helpers.CreateStudent(t, tx, true)
	helpers.CreateStudent(t, tx, false)
	skill := helpers.CreateSkill(t, tx, public.ID, "Go")
	helpers.CreateEndorsement(t, tx, skill.ID, "fan-1")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload struct {
		TotalStudents     int64 `json:"total_students"`
		PublicStudents    int64 `json:"public_students"`
		TotalAdmins       int64 `json:"total_admins"`
		TotalEndorsements int64 `json:"total_endorsements"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &payload))
	assert.Equal(t, int64(2), payload.TotalStudents)
	assert.Equal(t, int64(1), payload.PublicStudents)
	assert.Equal(t, int64(1), payload.TotalAdmins)
	assert.Equal(t, int64(1), payload.TotalEndorsements)
}

func TestAdminListStudents_IncludesPrivate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	helpers.CreateStudent(t, tx, true)
	hidden := helpers.CreateStudent(t, tx, false)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/students", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload struct {
		Students []struct {
			ID       string `json:"id"`
			IsPublic bool   `json:"is_public"`
		} `json:"students"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &payload))
	assert.Len(t, payload.Students, 2)

	found := false
	for _, s := range payload.Students {
		if s.ID == hidden.ID {
			found = true
			assert.False(t, s.IsPublic)
		}
	}
	assert.True(t, found, "The roster must include private students")
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/dashboard", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminDeleteStudent_Cascades(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "Doomed Skill")
	helpers.CreateProject(t, tx, student.ID, "Doomed Project")
	helpers.CreateAward(t, tx, student.ID, "Doomed Award")
	helpers.CreateEndorsement(t, tx, skill.ID, "mourner-1")

	res, _ := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/students/"+student.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	tx.Model(&models.Student{}).Where("id = ?", student.ID).Count(&count)
	assert.Equal(t, int64(0), count, "Student row must be gone")

	tx.Model(&models.User{}).Where("id = ?", student.UserID).Count(&count)
	assert.Equal(t, int64(0), count, "Owning user account must be gone")

	tx.Model(&models.Skill{}).Where("student_id = ?", student.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	tx.Model(&models.Project{}).Where("student_id = ?", student.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	tx.Model(&models.Award{}).Where("student_id = ?", student.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	tx.Model(&models.Endorsement{}).Where("skill_id = ?", skill.ID).Count(&count)
	assert.Equal(t, int64(0), count, "Endorsement rows must not survive the skill")
}

func TestAdminDeleteStudent_UnknownID(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/students/00000000-0000-0000-0000-000000000000", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Student not found")
}

func TestAdminGetStudentDetail_SeesHidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	hidden := helpers.CreateStudent(t, tx, false)
	helpers.CreateSkill(t, tx, hidden.ID, "Secret Skill")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/students/"+hidden.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Secret Skill")
}
