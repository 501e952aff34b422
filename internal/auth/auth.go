// Package auth binds an HTTP caller to a user id through a signed cookie
// session.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/tahcohcat/capsule-achievements/config"
)

const sessionName = "capsule-session"

type Auth struct {
	store    *sessions.CookieStore
	password string
	enabled  bool
}

func New(cfg config.AuthConfig) *Auth {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Secure = cfg.SecureCookie
	return &Auth{store: store, password: cfg.LoginPassword, enabled: cfg.Enabled}
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// LoginHandler handles POST /session. The shared login password opens a
// session for the given user id.
func (a *Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.password)) != 1 {
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	session, _ := a.store.Get(r, sessionName)
	session.Values["authenticated"] = true
	session.Values["user_id"] = req.UserID
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"user_id": req.UserID})
}

// LogoutHandler handles DELETE /session.
func (a *Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := a.store.Get(r, sessionName)
	session.Values["authenticated"] = false
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	session.Save(r, w)
	w.WriteHeader(http.StatusNoContent)
}

// UserID returns the user bound to the request's session, or "".
func (a *Auth) UserID(r *http.Request) string {
	session, err := a.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	if ok, _ := session.Values["authenticated"].(bool); !ok {
		return ""
	}
	id, _ := session.Values["user_id"].(string)
	return id
}

// Middleware rejects requests without a session and requests for another
// user's {userID} route. It is a pass-through when auth is disabled.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled {
			next.ServeHTTP(w, r)
			return
		}

		userID := a.UserID(r)
		if userID == "" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if target, ok := mux.Vars(r)["userID"]; ok && target != userID {
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) Enabled() bool {
	return a.enabled
}
