package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/audit"
	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	"github.com/BruksfildServices01/freelance-desk/internal/cache"
	"github.com/BruksfildServices01/freelance-desk/internal/config"
	"github.com/BruksfildServices01/freelance-desk/internal/handlers"
	infraRepo "github.com/BruksfildServices01/freelance-desk/internal/infra/repository"
	"github.com/BruksfildServices01/freelance-desk/internal/media"
	"github.com/BruksfildServices01/freelance-desk/internal/metrics"
	"github.com/BruksfildServices01/freelance-desk/internal/middleware"
	"github.com/BruksfildServices01/freelance-desk/internal/permission"
	"github.com/BruksfildServices01/freelance-desk/internal/timezone"
	ucWorkspace "github.com/BruksfildServices01/freelance-desk/internal/usecase/workspace"
	"github.com/BruksfildServices01/freelance-desk/internal/validators"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Logger    zerolog.Logger
	Tokens    *auth.TokenService
	Catalog   *permission.Catalog
	Cache     cache.Cache
	Offloader *media.Offloader
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Logger),
		middleware.Metrics(d.Metrics),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	invoiceRepo := infraRepo.NewInvoiceGormRepository(d.DB)
	portfolioRepo := infraRepo.NewPortfolioGormRepository(d.DB)

	auditDispatcher := audit.NewDispatcher(audit.New(d.DB))
	loc := timezone.Location(d.Config.Timezone)

	publicCache := d.Cache
	if publicCache == nil {
		publicCache = cache.Nop{}
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountRepo, d.Tokens, d.Catalog, d.Metrics, d.Config.CookieSecure)
	if d.Config.EmailDomainCheck {
		authHandler.WithEmailDomainCheck(validators.NewEmailDomain(nil).Resolves)
	}
	workspaceHandler := handlers.NewWorkspaceHandler(accountRepo, d.Tokens, d.Catalog, auditDispatcher, d.Metrics, d.Config.CookieSecure)

	clientHandler := handlers.NewClientHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	projectHandler := handlers.NewProjectHandler(d.DB, loc)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, publicCache, d.Offloader, auditDispatcher, d.Metrics, loc)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo, publicCache, d.Offloader)
	activityHandler := handlers.NewActivityHandler(d.DB, loc)

	publicHandler := handlers.NewPublicHandler(d.DB, invoiceRepo, portfolioRepo, publicCache, d.Metrics)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/invoices/:id", publicHandler.GetInvoice)
			publicAPI.GET("/projects/:workspaceSlug/:numberOrder", publicHandler.GetProject)
			publicAPI.POST("/projects/:workspaceSlug/:numberOrder/comments", publicHandler.AddProjectComment)
		}
		api.GET("/portfolio/public/:slug", publicHandler.GetPortfolio)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// TOKEN ONLY (no workspace needed)
		// ------------------------------
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(d.Tokens))
		{
			authed.POST("/auth/verify-token", authHandler.VerifyToken)
			authed.GET("/auth/profile", authHandler.Profile)
			authed.PUT("/auth/profile", authHandler.UpdateProfile)
			authed.PUT("/auth/password", authHandler.ChangePassword)

			authed.GET("/workspace/list", workspaceHandler.List)
			authed.POST("/workspace/switch", workspaceHandler.Switch)
		}

		// ------------------------------
		// WORKSPACE SCOPED
		// ------------------------------
		scoped := api.Group("/")
		scoped.Use(
			middleware.AuthMiddleware(d.Tokens),
			middleware.WorkspaceAccess(ucWorkspace.NewResolveAccess(accountRepo, d.Catalog)),
		)
		{
			ws := scoped.Group("/workspace")
			ws.GET("", workspaceHandler.Get)
			ws.PUT("", workspaceHandler.Rename)
			ws.GET("/members", workspaceHandler.ListMembers)
			ws.POST("/members", workspaceHandler.AddMember)
			ws.PATCH("/members", workspaceHandler.UpdateMember)
			ws.DELETE("/members", workspaceHandler.RemoveMember)
			ws.GET("/permissions", workspaceHandler.Permissions)
			ws.PATCH("/permissions", workspaceHandler.UpdatePermissions)
			ws.GET("/activity", middleware.RequireMenu("workspace"), activityHandler.List)

			clients := scoped.Group("/clients", middleware.RequireMenu("clients"))
			clients.GET("", clientHandler.List)
			clients.POST("", clientHandler.Create)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)

			scoped.GET("/projects/stats/dashboard", middleware.RequireMenu("dashboard"), projectHandler.Dashboard)

			projects := scoped.Group("/projects", middleware.RequireMenu("projects"))
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.POST("/:id/comments", projectHandler.AddComment)

			services := scoped.Group("/services", middleware.RequireMenu("services"))
			services.GET("", serviceHandler.List)
			services.POST("", serviceHandler.Create)
			services.GET("/:id", serviceHandler.Get)
			services.PUT("/:id", serviceHandler.Update)
			services.DELETE("/:id", serviceHandler.Delete)

			invoices := scoped.Group("/invoices", middleware.RequireMenu("invoices"))
			invoices.GET("", invoiceHandler.List)
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.PUT("/:id", invoiceHandler.Update)
			invoices.PATCH("/:id", invoiceHandler.UpdateStatus)
			invoices.DELETE("/:id", invoiceHandler.Delete)

			portfolio := scoped.Group("/portfolio", middleware.RequireMenu("portfolio"))
			portfolio.GET("", portfolioHandler.Get)
			portfolio.PUT("", portfolioHandler.Save)
			portfolio.GET("/check-slug", portfolioHandler.CheckSlug)
		}
	}
}
