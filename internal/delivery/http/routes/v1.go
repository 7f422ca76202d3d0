package routes

import (
	"staff-directory/internal/config"
	"staff-directory/internal/database"
	v1 "staff-directory/internal/delivery/http/routes/v1"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, cache usecase.FacetCache, notifier usecase.DirectoryNotifier, logger *zap.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, cache, notifier, logger)
}
