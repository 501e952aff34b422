// Package api exposes the achievement engine over JSON HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
	"github.com/tahcohcat/capsule-achievements/internal/services"
)

// Catalog is what the handlers need from the achievement table.
type Catalog interface {
	All() []models.AchievementDefinition
	Get(id string) (models.AchievementDefinition, bool)
	Suggest(id string) string
}

type Handler struct {
	engine  *services.Engine
	catalog Catalog
	logger  *logger.Log
}

func NewHandler(engine *services.Engine, cat Catalog) *Handler {
	return &Handler{engine: engine, catalog: cat, logger: logger.New()}
}

// RegisterRoutes mounts the per-user routes on users and the public catalog
// routes on public. The two may be the same router.
func RegisterRoutes(public, users *mux.Router, h *Handler) {
	public.HandleFunc("/achievements", h.ListAchievements).Methods("GET")
	public.HandleFunc("/achievements/{id}", h.GetAchievement).Methods("GET")
	public.HandleFunc("/rarity", h.ListRarity).Methods("GET")
	public.HandleFunc("/rarity/{id}", h.GetRarity).Methods("GET")

	users.HandleFunc("/users/{userID}/actions", h.RecordAction).Methods("POST")
	users.HandleFunc("/users/{userID}/stats", h.GetStats).Methods("GET")
	users.HandleFunc("/users/{userID}/achievements", h.GetUserAchievements).Methods("GET")
	users.HandleFunc("/users/{userID}/titles", h.GetTitleProfile).Methods("GET")
	users.HandleFunc("/users/{userID}/titles/available", h.ListAvailableTitles).Methods("GET")
	users.HandleFunc("/users/{userID}/titles/equipped", h.EquipTitle).Methods("PUT")
	users.HandleFunc("/users/{userID}/titles/default", h.InitializeDefaultTitle).Methods("POST")
	users.HandleFunc("/users/{userID}/notifications", h.GetNotifications).Methods("GET")
	users.HandleFunc("/users/{userID}/notifications/shown", h.MarkNotificationsShown).Methods("POST")
	users.HandleFunc("/users/{userID}/catchup", h.GetCatchUp).Methods("GET")
	users.HandleFunc("/users/{userID}/catchup/shown", h.MarkCatchUpShown).Methods("POST")
	users.HandleFunc("/users/{userID}/insights", h.GetInsights).Methods("GET")
	users.HandleFunc("/users/{userID}/activity", h.GetActivity).Methods("GET")
	users.HandleFunc("/users/{userID}/migrate", h.Migrate).Methods("POST")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func userID(r *http.Request) string {
	return mux.Vars(r)["userID"]
}

type actionRequest struct {
	Action   string          `json:"action"`
	Metadata models.Metadata `json:"metadata"`
}

type actionResponse struct {
	NewlyUnlocked []models.AchievementDefinition `json:"newly_unlocked"`
	Stats         *models.UserStats              `json:"stats"`
}

// POST /api/v1/users/{userID}/actions
func (h *Handler) RecordAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusBadRequest, "action is required")
		return
	}

	res := h.engine.Achievements.RecordAction(r.Context(), userID(r), req.Action, req.Metadata)
	writeJSON(w, http.StatusOK, actionResponse{NewlyUnlocked: res.NewlyUnlocked, Stats: res.Stats})
}

// GET /api/v1/users/{userID}/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Stats.GetUserStats(r.Context(), userID(r)))
}

// GET /api/v1/users/{userID}/achievements
func (h *Handler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Achievements.GetUserAchievements(r.Context(), userID(r)))
}

// GET /api/v1/users/{userID}/titles
func (h *Handler) GetTitleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Titles.GetProfile(r.Context(), userID(r)))
}

// GET /api/v1/users/{userID}/titles/available
func (h *Handler) ListAvailableTitles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Titles.ListAvailable(r.Context(), userID(r)))
}

type equipRequest struct {
	AchievementID *string `json:"achievement_id"`
}

type equipResponse struct {
	Profile models.TitleProfile `json:"profile"`
	Error   string              `json:"error,omitempty"`
}

// PUT /api/v1/users/{userID}/titles/equipped
// A null achievement_id unequips.
func (h *Handler) EquipTitle(w http.ResponseWriter, r *http.Request) {
	var req equipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.engine.Titles.Equip(r.Context(), userID(r), req.AchievementID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrUnknownAchievement):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrNoTitleReward):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, services.ErrNotUnlocked):
			status = http.StatusForbidden
		}
		writeJSON(w, status, equipResponse{Profile: profile, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, equipResponse{Profile: profile})
}

// POST /api/v1/users/{userID}/titles/default
func (h *Handler) InitializeDefaultTitle(w http.ResponseWriter, r *http.Request) {
	profile, err := h.engine.Titles.InitializeDefault(r.Context(), userID(r))
	if err != nil {
		h.logger.WithError(err).Warn(fmt.Sprintf("default title for %s", userID(r)))
		writeJSON(w, http.StatusServiceUnavailable, equipResponse{Profile: profile, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, equipResponse{Profile: profile})
}

// GET /api/v1/users/{userID}/notifications
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Notifications.GetPending(r.Context(), userID(r)))
}

type shownRequest struct {
	AchievementIDs []string `json:"achievement_ids"`
}

// POST /api/v1/users/{userID}/notifications/shown
func (h *Handler) MarkNotificationsShown(w http.ResponseWriter, r *http.Request) {
	var req shownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.engine.Notifications.MarkShown(r.Context(), userID(r), req.AchievementIDs); err != nil {
		h.logger.WithError(err).Warn(fmt.Sprintf("marking notifications shown for %s", userID(r)))
		writeError(w, http.StatusServiceUnavailable, "Failed to update notifications")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/users/{userID}/catchup
func (h *Handler) GetCatchUp(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Notifications.GetCatchUp(r.Context(), userID(r)))
}

type catchUpShownRequest struct {
	ID string `json:"id"`
}

// POST /api/v1/users/{userID}/catchup/shown
// An empty body or id marks every notice.
func (h *Handler) MarkCatchUpShown(w http.ResponseWriter, r *http.Request) {
	var req catchUpShownRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if err := h.engine.Notifications.MarkCatchUpShown(r.Context(), userID(r), req.ID); err != nil {
		h.logger.WithError(err).Warn(fmt.Sprintf("marking catch-up shown for %s", userID(r)))
		writeError(w, http.StatusServiceUnavailable, "Failed to update catch-up notices")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/users/{userID}/insights
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Insights.ForUser(r.Context(), userID(r)))
}

// GET /api/v1/users/{userID}/activity?limit=n
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.engine.Activity.GetRecentActivities(r.Context(), userID(r), limit))
}

// POST /api/v1/users/{userID}/migrate
func (h *Handler) Migrate(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Migration.RunFor(r.Context(), userID(r))
	if err != nil {
		h.logger.WithError(err).Warn(fmt.Sprintf("migration for %s", userID(r)))
		writeError(w, http.StatusServiceUnavailable, "Migration failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/v1/achievements
// Hidden entries are masked; their details surface only through a user's
// unlocked achievements.
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	defs := h.catalog.All()
	out := make([]models.AchievementDefinition, len(defs))
	for i, def := range defs {
		out[i] = def.Masked()
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/achievements/{id}
func (h *Handler) GetAchievement(w http.ResponseWriter, r *http.Request) {
	def, ok := h.lookup(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, def.Masked())
}

// GET /api/v1/rarity
func (h *Handler) ListRarity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"global":  h.engine.Rarity.Global(r.Context()),
		"percent": h.engine.Rarity.All(r.Context()),
	})
}

type rarityResponse struct {
	AchievementID string  `json:"achievement_id"`
	Percent       float64 `json:"percent"`
}

// GET /api/v1/rarity/{id}
func (h *Handler) GetRarity(w http.ResponseWriter, r *http.Request) {
	def, ok := h.lookup(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rarityResponse{
		AchievementID: def.ID,
		Percent:       h.engine.Rarity.Percent(r.Context(), def.ID),
	})
}

// lookup writes a 404 with the closest catalog id when id is unknown.
func (h *Handler) lookup(w http.ResponseWriter, id string) (models.AchievementDefinition, bool) {
	def, ok := h.catalog.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:      fmt.Sprintf("achievement %q not found", id),
			Suggestion: h.catalog.Suggest(id),
		})
	}
	return def, ok
}
