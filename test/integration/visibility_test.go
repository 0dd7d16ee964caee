package integration_test

import (
	"net/http"
	"testing"

	"skillboard_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudent_PublicProfileVisibleToAnyone(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	student := helpers.CreateStudent(t, tx, true)
	helpers.CreateSkill(t, tx, student.ID, "Go")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/students/"+student.ID, "", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, student.Bio)
	assert.Contains(t, bodyStr, "Go")
}

func TestGetStudent_HiddenProfileIs404ForStrangers(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	hidden := helpers.CreateStudent(t, tx, false)

	// Anonymous visitor: indistinguishable from a missing profile.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/students/"+hidden.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Student not found")

	// Another logged-in student fares no better.
	otherToken, _, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/students/"+hidden.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Student not found")
}

func TestGetStudent_OwnerSeesOwnHiddenProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _, student := helpers.CreateAndLoginStudent(t, ts, tx)
	require.NoError(t, tx.Model(student).Update("is_public", false).Error)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/students/"+student.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetStudent_AdminSeesHiddenProfile(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	hidden := helpers.CreateStudent(t, tx, false)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/students/"+hidden.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetStudent_UnknownIDIs404(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/students/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Student not found")
}
