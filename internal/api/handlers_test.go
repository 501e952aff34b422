package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/capsule-achievements/internal/catalog"
	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/services"
	"github.com/tahcohcat/capsule-achievements/internal/store"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cat := catalog.Load()
	engine := services.NewEngine(store.New(store.NewMemoryKV()), cat, services.WithCooldown(0))

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	RegisterRoutes(api, api, NewHandler(engine, cat))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestRecordAction_UnlocksFirstStep(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, "POST", srv.URL+"/api/v1/users/u1/actions", map[string]any{
		"action":   "capsule_created",
		"metadata": map[string]any{"local_date": "2025-03-14"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	out := decode[struct {
		NewlyUnlocked []struct {
			ID             string         `json:"id"`
			UnlockCriteria map[string]any `json:"unlock_criteria"`
		} `json:"newly_unlocked"`
		Stats struct {
			CapsulesCreated int `json:"capsules_created"`
		} `json:"stats"`
	}](t, body)

	ids := []string{}
	for _, d := range out.NewlyUnlocked {
		ids = append(ids, d.ID)
	}
	assert.Contains(t, ids, catalog.FirstAchievementID)
	assert.Equal(t, 1, out.Stats.CapsulesCreated)

	_, body = do(t, "GET", srv.URL+"/api/v1/users/u1/notifications", nil)
	pending := decode[[]map[string]any](t, body)
	assert.NotEmpty(t, pending)
}

func TestRecordAction_RejectsBadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, "POST", srv.URL+"/api/v1/users/u1/actions", map[string]any{"metadata": map[string]any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest("POST", srv.URL+"/api/v1/users/u1/actions", bytes.NewBufferString("{"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestEquipTitle_ErrorMapping(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		id     any
		status int
	}{
		{"unknown achievement", "does_not_exist", http.StatusNotFound},
		{"locked achievement", catalog.FirstAchievementID, http.StatusForbidden},
		{"unequip", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, "PUT", srv.URL+"/api/v1/users/u2/titles/equipped", map[string]any{"achievement_id": tt.id})
			assert.Equal(t, tt.status, resp.StatusCode, string(body))
		})
	}
}

func TestInitializeDefaultTitle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, "POST", srv.URL+"/api/v1/users/u3/titles/default", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	out := decode[struct {
		Profile struct {
			EquippedAchievementID *string `json:"equipped_achievement_id"`
		} `json:"profile"`
	}](t, body)
	require.NotNil(t, out.Profile.EquippedAchievementID)
	assert.Equal(t, catalog.FirstAchievementID, *out.Profile.EquippedAchievementID)

	_, body = do(t, "GET", srv.URL+"/api/v1/users/u3/titles/available", nil)
	titles := decode[[]services.AvailableTitle](t, body)
	require.NotEmpty(t, titles)
	assert.True(t, titles[0].Equipped)
}

func TestMarkNotificationsShown(t *testing.T) {
	srv := newTestServer(t)

	do(t, "POST", srv.URL+"/api/v1/users/u4/actions", map[string]any{"action": "capsule_created"})
	resp, _ := do(t, "POST", srv.URL+"/api/v1/users/u4/notifications/shown",
		map[string]any{"achievement_ids": []string{catalog.FirstAchievementID}})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body := do(t, "GET", srv.URL+"/api/v1/users/u4/achievements", nil)
	views := decode[[]struct {
		Achievement struct {
			ID string `json:"id"`
		} `json:"achievement"`
		Unlocked bool `json:"unlocked"`
	}](t, body)
	found := false
	for _, v := range views {
		if v.Achievement.ID == catalog.FirstAchievementID {
			found = v.Unlocked
		}
	}
	assert.True(t, found)
}

func TestMigrateAndCatchUp(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, "POST", srv.URL+"/api/v1/users/u5/migrate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	res := decode[services.MigrationResult](t, body)
	assert.Equal(t, "u5", res.UserID)

	resp, _ = do(t, "POST", srv.URL+"/api/v1/users/u5/catchup/shown", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, body = do(t, "GET", srv.URL+"/api/v1/users/u5/catchup", nil)
	for _, n := range decode[[]map[string]any](t, body) {
		assert.Equal(t, true, n["shown"])
	}
}

func TestGetActivity_Limit(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, "GET", srv.URL+"/api/v1/users/u6/activity?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	do(t, "POST", srv.URL+"/api/v1/users/u6/actions", map[string]any{"action": "capsule_created"})
	resp, body := do(t, "GET", srv.URL+"/api/v1/users/u6/activity?limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, body), 1)
}

func TestCatalogRoutes(t *testing.T) {
	srv := newTestServer(t)

	_, body := do(t, "GET", srv.URL+"/api/v1/achievements", nil)
	all := decode[[]map[string]any](t, body)
	assert.Equal(t, catalog.Load().Len(), len(all))

	resp, body := do(t, "GET", srv.URL+"/api/v1/achievements/"+catalog.FirstAchievementID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	def := decode[map[string]any](t, body)
	assert.Contains(t, def, "unlock_criteria")

	resp, body = do(t, "GET", srv.URL+"/api/v1/achievements/frist_step", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	notFound := decode[errorResponse](t, body)
	assert.Equal(t, catalog.FirstAchievementID, notFound.Suggestion)

	resp, body = do(t, "GET", srv.URL+"/api/v1/rarity/"+catalog.FirstAchievementID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, decode[rarityResponse](t, body).Percent)

	resp, _ = do(t, "GET", srv.URL+"/api/v1/rarity", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalogRoutes_MaskHiddenEntries(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, "GET", srv.URL+"/api/v1/achievements/leap_day", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	def := decode[map[string]any](t, body)
	assert.Equal(t, "???", def["title"])
	assert.Equal(t, true, def["hidden"])
	assert.NotContains(t, def, "unlock_criteria")
	assert.NotContains(t, string(body), "Leap of Faith")

	_, body = do(t, "GET", srv.URL+"/api/v1/achievements", nil)
	assert.NotContains(t, string(body), "Round the Clock")
	for _, d := range decode[[]map[string]any](t, body) {
		if d["id"] == "round_the_clock" {
			assert.Equal(t, "???", d["title"])
			assert.NotContains(t, d, "unlock_criteria")
		}
	}
}
