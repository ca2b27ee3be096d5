package main

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	db "ogef/internal/infrastructure/bd"
	"ogef/internal/routes"
	"ogef/internal/views"
	"ogef/pkg/api"
	"ogef/pkg/config"
	"ogef/pkg/customvalidator"
	"ogef/pkg/database/postgresql"
	apperrors "ogef/pkg/errors"
	applogger "ogef/pkg/logger"
	appmiddleware "ogef/pkg/middleware"
	"ogef/pkg/utils"
)

func main() {
	cfg := config.New()

	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erreur interne du serveur", err, nil)
				api.ErrorResponse(c, httpErr)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger))

	absPath, err := filepath.Abs(cfg.Server.UploadsDir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к uploads", zap.Error(err))
	}
	cfg.Server.UploadsDir = absPath
	e.Static("/uploads", absPath)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	renderer, err := views.NewRenderer()
	if err != nil {
		logger.Fatal("Ошибка разбора шаблонов", zap.Error(err))
	}
	e.Renderer = renderer

	if cfg.Postgres.MigrateOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := db.Migrate(ctx, cfg.Postgres.DSN)
		cancel()
		if err != nil {
			logger.Fatal("Ошибка применения миграций", zap.Error(err))
		}
		logger.Info("Миграции применены")
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			// Без Redis приложение работает, просто без кэша.
			logger.Warn("Redis недоступен, кэш отключён", zap.Error(err), zap.String("address", cfg.Redis.Address))
			redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	routes.InitRouter(e, dbConn, redisClient, cfg, logger)

	logger.Info("🚀 Сервер запущен на :" + cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
