package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LovationAdmin/spendwise-api/middleware"
	"github.com/LovationAdmin/spendwise-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wsSecret = "ws-test-secret"

func dialDashboard(t *testing.T, serverURL, userID string) *websocket.Conn {
	t.Helper()

	token, err := utils.GenerateAccessToken(userID, userID, wsSecret, time.Hour)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/dashboard?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNotifyDashboardChangedReachesOnlyOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewWSHandler()
	defer h.Close()

	r := gin.New()
	r.GET("/ws/dashboard", middleware.AuthMiddleware(wsSecret), h.HandleWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	owner := dialDashboard(t, srv.URL, "user-1")
	other := dialDashboard(t, srv.URL, "user-2")

	require.Eventually(t, func() bool { return h.M.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	h.NotifyDashboardChanged("user-1", "expense", "created")

	require.NoError(t, owner.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event dashboardEvent
	require.NoError(t, owner.ReadJSON(&event))
	assert.Equal(t, dashboardEvent{Type: "dashboard_updated", Resource: "expense", Action: "created"}, event)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "other users receive nothing")
}

func TestHandleWSRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewWSHandler()
	defer h.Close()

	r := gin.New()
	r.GET("/ws/dashboard", middleware.AuthMiddleware(wsSecret), h.HandleWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/dashboard", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}
