package routes

import (
	"staff-directory/internal/config"
	"staff-directory/internal/database"
	"staff-directory/internal/delivery/http/handler"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// Registry wires every HTTP surface of the service onto a fiber app.
type Registry struct {
	cfg      config.Config
	db       database.DB
	cache    usecase.FacetCache
	notifier usecase.DirectoryNotifier
	logger   *zap.Logger

	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, cache usecase.FacetCache, notifier usecase.DirectoryNotifier, logger *zap.Logger) *Registry {
	return &Registry{
		cfg:      cfg,
		db:       db,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		health:   handler.NewHealthHandler(db),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache, r.notifier, r.logger)
}
