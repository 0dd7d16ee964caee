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

func TestEndorse_AnonymousSession(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "Go")

	res, bodyStr := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", "", "session-a", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"ok":true`)
	assert.Contains(t, bodyStr, `"count":1`)

	// An endorsement row backs the counter.
	var rows int64
	tx.Model(&models.Endorsement{}).Where("skill_id = ?", skill.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestEndorse_DuplicateSessionRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "SQL")

	res, _ := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", "", "session-dup", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Same session, same skill: rejected without touching the counter.
	res, bodyStr := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", "", "session-dup", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, `"ok":false`)
	assert.Contains(t, bodyStr, "Already endorsed from this browser")

	var count uint
	tx.Model(&models.Skill{}).Where("id = ?", skill.ID).Select("endorsement_count").Scan(&count)
	assert.Equal(t, uint(1), count)
}

func TestEndorse_DifferentSessionsAccumulate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "Python")

	res, _ := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", "", "session-1", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", "", "session-2", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":2`)
}

func TestEndorse_GetMethodNotAllowed(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "Rust")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/skills/"+skill.ID+"/endorse", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Contains(t, bodyStr, `"ok":false`)
	assert.Contains(t, bodyStr, "POST required")
}

func TestEndorse_PrivateProfileForbidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	student := helpers.CreateStudent(t, tx, false)
	skill := helpers.CreateSkill(t, tx, student.ID, "Hidden Skill")

	res, bodyStr := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", "", "outsider", nil)

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Profile is private")

	var rows int64
	tx.Model(&models.Endorsement{}).Where("skill_id = ?", skill.ID).Count(&rows)
	assert.Equal(t, int64(0), rows)
}

func TestEndorse_OwnerCanEndorseOwnPrivateSkill(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _, student := helpers.CreateAndLoginStudent(t, ts, tx)
	require.NoError(t, tx.Model(student).Update("is_public", false).Error)
	skill := helpers.CreateSkill(t, tx, student.ID, "Self Endorsed")

	res, bodyStr := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/"+skill.ID+"/endorse", token, "owner-session", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":1`)
}

func TestEndorse_UnknownSkill(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequestWithSession(t, tx, http.MethodPost, "/api/v1/skills/00000000-0000-0000-0000-000000000000/endorse", "", "any", nil)

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, `"ok":false`)
}

func TestAdminEndorse_OverrideSkipsRow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	student := helpers.CreateStudent(t, tx, false)
	skill := helpers.CreateSkill(t, tx, student.ID, "Boosted")

	// The override bumps the counter on a private profile with no dedupe,
	// twice in a row.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorse", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":1`)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorse", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":2`)

	// No endorsement rows appear.
	var rows int64
	tx.Model(&models.Endorsement{}).Where("skill_id = ?", skill.ID).Count(&rows)
	assert.Equal(t, int64(0), rows)
}

func TestAdminEndorse_RequiresAdmin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, _, student := helpers.CreateAndLoginStudent(t, ts, tx)
	skill := helpers.CreateSkill(t, tx, student.ID, "Guarded")

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorse", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestEndorsementAuditAndRepair(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "Audited")

	helpers.CreateEndorsement(t, tx, skill.ID, "voter-1")
	helpers.CreateEndorsement(t, tx, skill.ID, "voter-2")

	// Two overrides push the counter ahead of the rows.
	for i := 0; i < 2; i++ {
		res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorse", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/skills/"+skill.ID+"/endorsements/audit", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var audit struct {
		Counter uint  `json:"counter"`
		Rows    int64 `json:"rows"`
		Drift   int64 `json:"drift"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &audit))
	assert.Equal(t, uint(4), audit.Counter)
	assert.Equal(t, int64(2), audit.Rows)
	assert.Equal(t, int64(2), audit.Drift)

	// Repair snaps the counter back to the row count.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorsements/repair", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":2`)

	var count uint
	tx.Model(&models.Skill{}).Where("id = ?", skill.ID).Select("endorsement_count").Scan(&count)
	assert.Equal(t, uint(2), count)
}

func TestEndorsementRepair_ReportsZeroCount(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	student := helpers.CreateStudent(t, tx, true)
	skill := helpers.CreateSkill(t, tx, student.ID, "Inflated")

	// Only an override backs the counter; repair must report the zero
	// explicitly rather than omit the field.
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorse", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/skills/"+skill.ID+"/endorsements/repair", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"ok":true`)
	assert.Contains(t, bodyStr, `"count":0`)

	var count uint
	tx.Model(&models.Skill{}).Where("id = ?", skill.ID).Select("endorsement_count").Scan(&count)
	assert.Equal(t, uint(0), count)
}
