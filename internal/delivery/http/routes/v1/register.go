package v1

import (
	"staff-directory/internal/config"
	"staff-directory/internal/database"
	"staff-directory/internal/delivery/http/handler"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/pkg/jwt"
	"staff-directory/internal/repository"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.FacetCache, notifier usecase.DirectoryNotifier, logger *zap.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.Auth.TokenSecret)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	directoryRepo := repository.NewPostgresDirectoryRepository(db)
	facetRepo := repository.NewPostgresFacetRepository(db)
	managerRepo := repository.NewPostgresManagerRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	userProjectRepo := repository.NewPostgresUserProjectRepository(db)
	userPositionRepo := repository.NewPostgresUserPositionRepository(db)

	facetUC := usecase.NewFacetUsecase(facetRepo, managerRepo, cache, cfg.Redis.TTL, logger)
	directoryUC := usecase.NewDirectoryUsecase(directoryRepo, userRepo)
	userUC := usecase.NewUserUsecase(userRepo, notifier)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, facetUC, notifier)
	userProjectUC := usecase.NewUserProjectUsecase(userProjectRepo, facetUC, notifier)
	userPositionUC := usecase.NewUserPositionUsecase(userPositionRepo, facetUC, notifier)
	managerUC := usecase.NewManagerUsecase(managerRepo, userRepo, facetUC, notifier)

	protected := r.Group("", authMw.Middleware())

	handler.NewDirectoryHandler(directoryUC).RegisterRoutes(protected)
	handler.NewUserHandler(userUC).RegisterRoutes(protected)
	handler.NewUserSkillHandler(userSkillUC).RegisterRoutes(protected)
	handler.NewUserProjectHandler(userProjectUC).RegisterRoutes(protected)
	handler.NewUserPositionHandler(userPositionUC).RegisterRoutes(protected)
	handler.NewManagerHandler(managerUC).RegisterRoutes(protected)
	handler.NewFacetHandler(facetUC).RegisterRoutes(protected)
}
