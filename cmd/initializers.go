package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"boardfarm/app/handler"
	"boardfarm/app/router"
	"boardfarm/internal/service"
	"boardfarm/pkg/config"
	"boardfarm/pkg/logger"
	mysqlstore "boardfarm/pkg/store/mysql"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.Sync()
		logger.InfoCtx(app.ctx, "Logging system has been closed")
	})
	return nil
}

// initMySQL initializes MySQL and runs schema migration
func (app *Application) initMySQL() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		app.config.MySQL.User,
		app.config.MySQL.Password,
		app.config.MySQL.Host,
		app.config.MySQL.Port,
		app.config.MySQL.Database,
	)

	repo, err := mysqlstore.NewRepository(dsn)
	if err != nil {
		return err
	}

	if err := repo.GetDatastore().Migrate(); err != nil {
		repo.Close()
		return fmt.Errorf("schema migration failed: %w", err)
	}

	app.mysqlRepo = repo
	app.registerCleanup(func() {
		repo.Close()
		logger.InfoCtx(app.ctx, "MySQL connection has been closed")
	})

	return nil
}

// initRedis initializes Redis. Redis only backs the distributed lock taken by
// background jobs; without it the service still runs, single-instance.
func (app *Application) initRedis() error {
	if app.config.Redis.Addr == "" {
		logger.WarnCtx(app.ctx, "Redis not configured, background jobs run without distributed locking")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.config.Redis.Addr,
		Password: app.config.Redis.Password,
		DB:       app.config.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(app.ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	app.redisClient = client
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	return nil
}

// initServices initializes service layer
func (app *Application) initServices() error {
	app.capabilityService = service.NewCapabilityService(app.mysqlRepo.Capability)
	app.relayService = service.NewRelayService(app.mysqlRepo.Relay)
	app.testPCService = service.NewTestPCService(app.mysqlRepo.TestPC)
	app.statsService = service.NewPCStatsService(app.mysqlRepo.PCStats, app.mysqlRepo.TestPC)
	app.boardService = service.NewBoardService(
		app.mysqlRepo.Board,
		app.mysqlRepo.BoardLog,
		app.mysqlRepo.Capability,
		app.mysqlRepo.Relay,
		app.mysqlRepo.TestPC,
	)
	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.capabilityHandler = handler.NewCapabilityHandler(app.capabilityService)
	app.relayHandler = handler.NewRelayHandler(app.relayService)
	app.testPCHandler = handler.NewTestPCHandler(app.testPCService)
	app.statsHandler = handler.NewPCStatsHandler(app.statsService)
	app.boardHandler = handler.NewBoardHandler(app.boardService)
	return nil
}

// initHTTPServer initializes the gin engine and HTTP server
func (app *Application) initHTTPServer() error {
	gin.SetMode(app.config.Server.Mode)
	app.ginEngine = gin.New()

	r := router.NewRouter(
		app.capabilityHandler,
		app.relayHandler,
		app.testPCHandler,
		app.statsHandler,
		app.boardHandler,
	)
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}
	return nil
}
