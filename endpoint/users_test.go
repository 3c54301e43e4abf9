package endpoint

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_RequireToken(t *testing.T) {
	env := setupEndpointTest(t)

	w, resp := env.do(t, http.MethodGet, "/users/me", "", nil)
	assertStatus(t, w, http.StatusUnauthorized)
	assert.Equal(t, false, resp["success"])

	w, _ = env.do(t, http.MethodGet, "/users/me", "not-a-jwt", nil)
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestUsers_UnsyncedSubjectIsUnauthorized(t *testing.T) {
	env := setupEndpointTest(t)

	w, resp := env.do(t, http.MethodGet, "/users/me", tokenFor(t, "idp|stranger"), nil)
	assertStatus(t, w, http.StatusUnauthorized)
	assert.Contains(t, resp["error"], "/users/sync")
}

func TestUsers_SyncAndMe(t *testing.T) {
	env := setupEndpointTest(t)

	tok, userID := env.sync(t, "idp|jane")
	assert.NotZero(t, userID)

	// sync is idempotent
	again, sameID := env.sync(t, "idp|jane")
	assert.Equal(t, userID, sameID)
	assert.NotEmpty(t, again)

	w, resp := env.do(t, http.MethodGet, "/users/me", tok, nil)
	assertSuccessResponse(t, w, resp)
	me := data(t, resp)
	assert.Equal(t, "idp|jane", me["subject"])
	assert.Equal(t, "patient", me["role"])
	assert.NotNil(t, me["patient_id"])
	assert.Nil(t, me["doctor_id"])
}

func TestUsers_AdminOnlyRoutes(t *testing.T) {
	env := setupEndpointTest(t)
	adminToken := env.seedAdmin(t)
	patientToken, patientID := env.sync(t, "idp|jane")

	w, _ := env.do(t, http.MethodGet, "/users", patientToken, nil)
	assertStatus(t, w, http.StatusForbidden)

	w, _ = env.do(t, http.MethodPatch, fmt.Sprintf("/users/%d/promote", patientID), patientToken, nil)
	assertStatus(t, w, http.StatusForbidden)

	w, resp := env.do(t, http.MethodGet, "/users", adminToken, nil)
	assertSuccessResponse(t, w, resp)
	assert.Equal(t, float64(2), data(t, resp)["total"])
}

func TestUsers_PromoteAndRevert(t *testing.T) {
	env := setupEndpointTest(t)
	adminToken := env.seedAdmin(t)
	tok, userID := env.sync(t, "idp|house")

	w, resp := env.do(t, http.MethodPatch, fmt.Sprintf("/users/%d/promote", userID), adminToken, nil)
	assertSuccessResponse(t, w, resp)
	assert.Equal(t, "doctor", data(t, resp)["role"])

	w, resp = env.do(t, http.MethodGet, "/users/me", tok, nil)
	assertSuccessResponse(t, w, resp)
	assert.Equal(t, "doctor", data(t, resp)["role"])
	assert.NotNil(t, data(t, resp)["doctor_id"])

	w, _ = env.do(t, http.MethodPatch, fmt.Sprintf("/users/%d/promote", userID), adminToken, nil)
	assertStatus(t, w, http.StatusBadRequest)

	w, resp = env.do(t, http.MethodPatch, fmt.Sprintf("/users/%d/revert", userID), adminToken, nil)
	assertSuccessResponse(t, w, resp)
	assert.Equal(t, "patient", data(t, resp)["role"])

	w, _ = env.do(t, http.MethodPatch, "/users/9999/promote", adminToken, nil)
	assertStatus(t, w, http.StatusNotFound)

	w, _ = env.do(t, http.MethodPatch, "/users/abc/promote", adminToken, nil)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestGetMe_WithoutActor(t *testing.T) {
	r := newTestRouter()
	w, resp, err := doRequestWithHandler(r, requestSpec{
		method:       http.MethodGet,
		registerPath: "/users/me",
		requestPath:  "/users/me",
		handler:      GetMe,
	})
	require.NoError(t, err)
	assertStatus(t, w, http.StatusUnauthorized)
	assert.Equal(t, false, resp["success"])
}

func TestUsers_UpdateMe(t *testing.T) {
	env := setupEndpointTest(t)
	adminToken := env.seedAdmin(t)
	patientToken, _ := env.sync(t, "idp|jane")
	doctorToken, _ := env.seedDoctor(t, adminToken, "idp|house")

	w, resp := env.do(t, http.MethodPatch, "/users/me", patientToken, map[string]interface{}{"phone_number": "+56912345678"})
	assertSuccessResponse(t, w, resp)
	patient, ok := data(t, resp)["patient"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "+56912345678", patient["phone_number"])

	w, _ = env.do(t, http.MethodPatch, "/users/me", patientToken, map[string]interface{}{"specialty": "Surgery"})
	assertStatus(t, w, http.StatusBadRequest)

	w, resp = env.do(t, http.MethodPatch, "/users/me", patientToken, map[string]interface{}{"role": "admin"})
	assertStatus(t, w, http.StatusForbidden)
	assert.Equal(t, false, resp["success"])

	w, resp = env.do(t, http.MethodGet, "/users/me", patientToken, nil)
	assertSuccessResponse(t, w, resp)
	assert.Equal(t, "patient", data(t, resp)["role"])

	w, resp = env.do(t, http.MethodPatch, "/users/me", doctorToken, map[string]interface{}{"specialty": "Diagnostics", "phone_number": "+1555"})
	assertSuccessResponse(t, w, resp)
	doctor, ok := data(t, resp)["doctor"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Diagnostics", doctor["specialty"])
	assert.Equal(t, "+1555", doctor["phone_number"])

	w, _ = env.do(t, http.MethodPatch, "/users/me", adminToken, map[string]interface{}{"phone_number": "+1"})
	assertStatus(t, w, http.StatusForbidden)
}

func TestUsers_ListPatients(t *testing.T) {
	env := setupEndpointTest(t)
	adminToken := env.seedAdmin(t)
	patientToken, _ := env.sync(t, "idp|jane")
	env.sync(t, "idp|john")

	w, _ := env.do(t, http.MethodGet, "/patients", patientToken, nil)
	assertStatus(t, w, http.StatusForbidden)

	w, resp := env.do(t, http.MethodGet, "/patients", adminToken, nil)
	assertSuccessResponse(t, w, resp)
	assert.Equal(t, float64(2), data(t, resp)["total"])

	w, resp = env.do(t, http.MethodGet, "/patients?search=jane", adminToken, nil)
	assertSuccessResponse(t, w, resp)
	body := data(t, resp)
	assert.Equal(t, float64(1), body["total"])
	patients, ok := body["patients"].([]interface{})
	require.True(t, ok)
	require.Len(t, patients, 1)
	user := patients[0].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "idp|jane", user["subject"])
}
