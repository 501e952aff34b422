package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
	"github.com/tahcohcat/capsule-achievements/internal/models"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestHub(t *testing.T, allowedOrigins ...string) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(allowedOrigins...)
	go hub.Run(ctx)

	r := mux.NewRouter()
	RegisterRoutes(r, hub, func(r *http.Request) string { return r.URL.Query().Get("user") })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *gorilla.Conn {
	t.Helper()
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversToUserOnly(t *testing.T) {
	hub, url := newTestHub(t)

	alice := dial(t, url+"?user=alice")
	bob := dial(t, url+"?user=bob")
	require.Eventually(t, func() bool {
		return hub.ClientCount("alice") == 1 && hub.ClientCount("bob") == 1
	}, time.Second, 10*time.Millisecond)

	hub.NotifyUnlocked("alice", []models.AchievementDefinition{{ID: "first_step", Title: "First Step"}})

	alice.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := alice.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type         string `json:"type"`
		UserID       string `json:"user_id"`
		Achievements []struct {
			ID string `json:"id"`
		} `json:"achievements"`
	}
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "achievements_unlocked", ev.Type)
	assert.Equal(t, "alice", ev.UserID)
	require.Len(t, ev.Achievements, 1)
	assert.Equal(t, "first_step", ev.Achievements[0].ID)

	bob.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url+"?user=carol")
	require.Eventually(t, func() bool { return hub.ClientCount("carol") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("carol") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_RequiresUser(t *testing.T) {
	_, url := newTestHub(t)

	_, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotifyUnlocked_NeverBlocks(t *testing.T) {
	hub := NewHub() // not running: nothing drains the broadcast channel

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(hub.broadcast)+10; i++ {
			hub.NotifyUnlocked("u1", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyUnlocked blocked on a saturated hub")
	}
}

func TestServeWS_ChecksOrigin(t *testing.T) {
	_, url := newTestHub(t, "http://localhost:3000")

	_, resp, err := gorilla.DefaultDialer.Dial(url+"?user=alice", http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := gorilla.DefaultDialer.Dial(url+"?user=alice", http.Header{"Origin": {"http://localhost:3000"}})
	require.NoError(t, err)
	conn.Close()

	dial(t, url+"?user=alice")
}

func TestOriginChecker_Wildcard(t *testing.T) {
	check := originChecker([]string{"*"})
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "http://anywhere.example")
	assert.True(t, check(r))
}
