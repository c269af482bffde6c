package main

import (
	"fmt"

	"github.com/conectahub/backend/internal/config"
	"github.com/conectahub/backend/internal/handlers"
	"github.com/conectahub/backend/internal/middleware"
	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/internal/services"
	"github.com/conectahub/backend/internal/storage"
	"github.com/conectahub/backend/internal/utils"
	"github.com/conectahub/backend/pkg/logger"
	"gorm.io/gorm"
)

// app holds the store handle, the write limiter and every handler the router needs.
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	limiter *middleware.RateLimiter

	health       *handlers.HealthHandler
	auth         *handlers.AuthHandler
	users        *handlers.UserHandler
	projects     *handlers.ProjectHandler
	likes        *handlers.LikeHandler
	comments     *handlers.CommentHandler
	notification *handlers.NotificationHandler
	connections  *handlers.ConnectionHandler
	chats        *handlers.ChatHandler
	vagas        *handlers.VagaHandler
	briefings    *handlers.BriefingHandler
}

// bootstrap opens the database, migrates the schema and wires services into handlers.
func bootstrap(cfg *config.Config) (*app, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("Database ready")

	files, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxUploadBytes())
	if err != nil {
		return nil, err
	}

	return newApp(cfg, db, files), nil
}

func newApp(cfg *config.Config, db *gorm.DB, files storage.Store) *app {
	handlers.RegisterValidators()

	notificationService := services.NewNotificationService(db)
	chatService := services.NewChatService(db)
	userService := services.NewUserService(db, files)
	collabService := services.NewCollaborationService(db, notificationService, cfg.Workflow)

	a := &app{
		cfg:          cfg,
		db:           db,
		health:       handlers.NewHealthHandler(db),
		auth:         handlers.NewAuthHandler(services.NewAuthService(db, &cfg.JWT), userService),
		users:        handlers.NewUserHandler(userService),
		projects:     handlers.NewProjectHandler(services.NewProjectService(db, files), collabService),
		likes:        handlers.NewLikeHandler(services.NewLikeService(db, notificationService)),
		comments:     handlers.NewCommentHandler(services.NewCommentService(db, notificationService)),
		notification: handlers.NewNotificationHandler(notificationService, collabService),
		connections:  handlers.NewConnectionHandler(services.NewConnectionService(db, notificationService, chatService)),
		chats:        handlers.NewChatHandler(chatService),
		vagas:        handlers.NewVagaHandler(services.NewVagaService(db, files)),
		briefings:    handlers.NewBriefingHandler(services.NewBriefingService(db)),
	}
	if cfg.RateLimit.Enabled {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	return a
}

// shutdown stops the limiter sweeper and releases the connection pool.
func (a *app) shutdown() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if err := models.Close(a.db); err != nil {
		logger.Warn().Err(err).Msg("Failed to close database")
	}
}
