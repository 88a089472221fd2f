package handlers

import (
	"net/http"

	"github.com/LovationAdmin/spendwise-api/middleware"
	"github.com/LovationAdmin/spendwise-api/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	summary, err := h.Dashboard.Summary(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
