package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ogef/internal/controllers"
	"ogef/internal/repositories"
	"ogef/internal/services"
	"ogef/pkg/config"
	"ogef/pkg/filestorage"
	"ogef/pkg/utils"
)

// InitRouter собирает репозитории, сервисы и контроллеры и вешает маршруты.
// redisClient может быть nil: тогда справочники читаются из БД без кэша.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadsDir)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	flasher := utils.NewFlasher(cfg.Server.SecretKey)
	timeout := cfg.Postgres.QueryTimeout

	var cacheRepo repositories.CacheRepositoryInterface
	if redisClient != nil {
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	}
	base := services.NewBaseService(cacheRepo, cfg.Redis.CacheTTL, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	officeRepo := repositories.NewOfficeRepository(dbConn, logger)
	filterRepo := repositories.NewOfficeFilterRepository(dbConn, logger)
	referenceRepo := repositories.NewReferenceRepository(dbConn, logger)
	readModelRepo := repositories.NewReadModelRepository(dbConn, logger)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, logger)

	// --- 2. СЕРВИСЫ ---
	referenceService := services.NewReferenceService(referenceRepo, base, logger)
	officeService := services.NewOfficeService(officeRepo, txManager, fileStorage, base, logger)
	filterService := services.NewOfficeFilterService(filterRepo, referenceService, logger)
	readModelService := services.NewReadModelService(readModelRepo, base, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	dashboardController := controllers.NewDashboardController(dashboardService, flasher, timeout, logger)
	officeController := controllers.NewOfficeController(officeService, filterService, referenceService, flasher, timeout, logger)
	apiController := controllers.NewApiController(readModelService, timeout)

	// --- 4. РОУТЕРЫ ---
	e.Use(flasher.Middleware())
	e.GET("/", dashboardController.Index)
	runOfficeRouter(e.Group("/gef"), officeController)
	runApiRouter(e.Group("/api"), apiController)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
