package routes

import (
	"net/http"

	"github.com/LovationAdmin/spendwise-api/handlers"
	"github.com/LovationAdmin/spendwise-api/middleware"
	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/services"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the router needs. RateLimiter and WS are optional.
type Deps struct {
	Store          store.Store
	Auth           *services.AuthService
	Expenses       *services.ExpenseService
	Budgets        *services.BudgetService
	Dashboard      *services.DashboardService
	Export         *services.ExportService
	WS             *handlers.WSHandler
	RateLimiter    *middleware.RateLimiter
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRouter(deps Deps) (*gin.Engine, error) {
	if err := models.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	router.Use(middleware.RequestLogger())
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	health := &handlers.HealthHandler{Store: deps.Store}
	router.GET("/", health.Index)
	router.GET("/health", health.Health)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	api := router.Group("/api")
	SetupAuthRoutes(api, deps.Auth)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret))
	{
		SetupUserRoutes(protected, deps.Auth)
		SetupExpenseRoutes(protected, deps.Expenses, deps.Export)
		SetupBudgetRoutes(protected, deps.Budgets)
		SetupDashboardRoutes(protected, deps.Dashboard, deps.WS)
	}

	return router, nil
}

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, auth *services.AuthService) {
	h := &handlers.AuthHandler{Auth: auth}

	rg.POST("/register", h.Signup)
	rg.POST("/login", h.Login)
}

// SetupUserRoutes sets up protected user routes.
func SetupUserRoutes(rg *gin.RouterGroup, auth *services.AuthService) {
	h := &handlers.AuthHandler{Auth: auth}

	rg.GET("/users/me", h.GetProfile)
	rg.PUT("/users/me/password", h.ChangePassword)
}

func SetupExpenseRoutes(rg *gin.RouterGroup, expenses *services.ExpenseService, export *services.ExportService) {
	h := &handlers.ExpenseHandler{Expenses: expenses, Export: export}

	rg.GET("/expenses", h.ListExpenses)
	rg.POST("/expenses", h.CreateExpense)
	rg.GET("/expenses/export", h.ExportExpenses)
	rg.GET("/expenses/:id", h.GetExpense)
	rg.PUT("/expenses/:id", h.UpdateExpense)
	rg.DELETE("/expenses/:id", h.DeleteExpense)
}

func SetupBudgetRoutes(rg *gin.RouterGroup, budgets *services.BudgetService) {
	h := &handlers.BudgetHandler{Budgets: budgets}

	rg.GET("/budgets", h.GetBudgets)
	rg.POST("/budgets", h.CreateBudget)
	rg.DELETE("/budgets/:id", h.DeleteBudget)
}

func SetupDashboardRoutes(rg *gin.RouterGroup, dashboard *services.DashboardService, ws *handlers.WSHandler) {
	h := &handlers.DashboardHandler{Dashboard: dashboard}

	rg.GET("/dashboard", h.GetDashboard)
	if ws != nil {
		rg.GET("/ws/dashboard", ws.HandleWS)
	}
}
