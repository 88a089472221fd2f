package handlers

import (
	"errors"
	"net/http"

	"github.com/LovationAdmin/spendwise-api/middleware"
	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/services"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	Budgets *services.BudgetService
}

func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	filter, err := parseBudgetFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budgets, err := h.Budgets.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
		return
	}

	c.JSON(http.StatusOK, budgets)
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.Budgets.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if errors.Is(err, services.ErrInvalidAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	c.JSON(http.StatusCreated, budget)
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	deleted, err := h.Budgets.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
