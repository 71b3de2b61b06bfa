package app

import (
	"database/sql"

	"github.com/yungbote/schoolmeal-backend/internal/http"
	httpH "github.com/yungbote/schoolmeal-backend/internal/http/handlers"
	httpMW "github.com/yungbote/schoolmeal-backend/internal/http/middleware"
	"github.com/yungbote/schoolmeal-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Template  *httpH.TemplateHandler
	Menu      *httpH.MenuHandler
	Selection *httpH.SelectionHandler
	Analysis  *httpH.AnalysisHandler
	Admin     *httpH.AdminHandler
	Legacy    *httpH.LegacyHandler
}

func wireHandlers(log *logger.Logger, sqlDB *sql.DB, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	h := Handlers{
		Health:    httpH.NewHealthHandler(sqlDB),
		Auth:      httpH.NewAuthHandler(services.Auth),
		User:      httpH.NewUserHandler(services.User),
		Template:  httpH.NewTemplateHandler(services.Template),
		Menu:      httpH.NewMenuHandler(services.Menu),
		Selection: httpH.NewSelectionHandler(services.Selection),
		Analysis:  httpH.NewAnalysisHandler(services.Analysis),
		Admin:     httpH.NewAdminHandler(services.Stats, services.Audit),
	}
	if clients.Legacy != nil {
		h.Legacy = httpH.NewLegacyHandler(clients.Legacy)
	}
	return h
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:              log,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		UserHandler:      handlers.User,
		TemplateHandler:  handlers.Template,
		MenuHandler:      handlers.Menu,
		SelectionHandler: handlers.Selection,
		AnalysisHandler:  handlers.Analysis,
		AdminHandler:     handlers.Admin,
		LegacyHandler:    handlers.Legacy,
	})
}
