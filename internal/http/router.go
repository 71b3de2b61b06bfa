package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/schoolmeal-backend/internal/http/handlers"
	httpMW "github.com/yungbote/schoolmeal-backend/internal/http/middleware"
	"github.com/yungbote/schoolmeal-backend/internal/platform/authz"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	UserHandler      *httpH.UserHandler
	TemplateHandler  *httpH.TemplateHandler
	MenuHandler      *httpH.MenuHandler
	SelectionHandler *httpH.SelectionHandler
	AnalysisHandler  *httpH.AnalysisHandler
	AdminHandler     *httpH.AdminHandler
	// LegacyHandler is nil unless both legacy files are configured.
	LegacyHandler *httpH.LegacyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateProfile)
		}

		// Templates
		if cfg.TemplateHandler != nil {
			protected.GET("/templates", cfg.TemplateHandler.List)
			protected.POST("/templates", httpMW.RequireRole(authz.RoleOrganisation), cfg.TemplateHandler.Create)
			protected.DELETE("/templates/:id", httpMW.RequireRole(authz.RoleOrganisation), cfg.TemplateHandler.Delete)
		}

		// Menus
		if cfg.MenuHandler != nil {
			protected.GET("/menus/current", cfg.MenuHandler.Current)
			protected.GET("/menus/:day", cfg.MenuHandler.Get)
			protected.PUT("/menus/:day/:slot", httpMW.RequireRole(authz.RoleOrganisation), cfg.MenuHandler.Publish)
		}

		// Selections (students)
		if cfg.SelectionHandler != nil {
			students := protected.Group("/selections", httpMW.RequireRole(authz.Students...))
			students.GET("/latest", cfg.SelectionHandler.Latest)
			students.GET("/:day", cfg.SelectionHandler.Get)
			students.PUT("/:day", cfg.SelectionHandler.Replace)
		}

		// Analysis
		if cfg.AnalysisHandler != nil {
			protected.GET("/analysis/:day", httpMW.RequireRole(authz.Students...), cfg.AnalysisHandler.Mine)
		}

		// Admin (organisation)
		admin := protected.Group("/admin", httpMW.RequireRole(authz.RoleOrganisation))
		if cfg.AnalysisHandler != nil {
			admin.GET("/students/:id/analysis/:day", cfg.AnalysisHandler.ForStudent)
		}
		if cfg.AdminHandler != nil {
			admin.GET("/stats", cfg.AdminHandler.Stats)
			admin.GET("/audit/dangling", cfg.AdminHandler.Dangling)
			admin.POST("/audit/dangling/purge", cfg.AdminHandler.Purge)
		}

		// Legacy CSV/JSON lookup
		if cfg.LegacyHandler != nil {
			protected.POST("/legacy/suggest", cfg.LegacyHandler.Suggest)
			protected.GET("/legacy/menu/current", cfg.LegacyHandler.Current)
		}
	}

	return r
}
