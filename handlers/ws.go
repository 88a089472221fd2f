package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/LovationAdmin/spendwise-api/logger"
	"github.com/LovationAdmin/spendwise-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"go.uber.org/zap"
)

const sessionUserKey = "user_id"

type dashboardEvent struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// WSHandler pushes dashboard change signals to the owning user's sockets.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024
	// Keep-alive for proxies that drop idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	log := logger.Named("ws")

	m.HandleConnect(func(s *melody.Session) {
		log.Info("Client connected", logger.UserID(sessionUser(s)))
	})

	m.HandleDisconnect(func(s *melody.Session) {
		log.Info("Client disconnected", logger.UserID(sessionUser(s)))
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Warn("WebSocket error", zap.Error(err))
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades an authenticated request.
func (h *WSHandler) HandleWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]any{sessionUserKey: userID})
	if err != nil {
		logger.Named("ws").Warn("Failed to upgrade websocket", zap.Error(err))
	}
}

// NotifyDashboardChanged tells every socket of userID that its dashboard is stale.
func (h *WSHandler) NotifyDashboardChanged(userID, resource, action string) {
	msg, err := json.Marshal(dashboardEvent{Type: "dashboard_updated", Resource: resource, Action: action})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		return sessionUser(s) == userID
	})
	if err != nil {
		logger.Named("ws").Warn("Failed to broadcast dashboard update", logger.UserID(userID), zap.Error(err))
	}
}

func sessionUser(s *melody.Session) string {
	v, _ := s.Get(sessionUserKey)
	id, _ := v.(string)
	return id
}

func (h *WSHandler) Close() error {
	return h.M.Close()
}
