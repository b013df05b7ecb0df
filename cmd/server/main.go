package main

import (
	"log"
	"net/http"

	_ "todoapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"todoapi/internal/auth"
	"todoapi/internal/cache"
	"todoapi/internal/config"
	"todoapi/internal/db"
	"todoapi/internal/handler"
	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/router"
	"todoapi/internal/service"
)

// @title Todo API
// @version 1.0
// @description Owner-scoped todo service with x-auth token authentication.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("starting server in environment %q...", cfg.Env)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.Todo{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)

	tokenService := auth.NewTokenService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, tokenService)
	todoService := service.NewTodoService(todoRepo, cacheClient)

	userHandler := handler.NewUserHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)

	router.Register(e, tokenService, userRepo, userHandler, todoHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
