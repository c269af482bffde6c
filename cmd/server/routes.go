package main

import (
	"github.com/conectahub/backend/internal/middleware"
	"github.com/conectahub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// newRouter builds the engine with every route of the API.
func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = a.cfg.Upload.MaxUploadBytes() * 2
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Identify())

	// Writes that fan out to notifications or chats share one per-IP budget
	write := []gin.HandlerFunc{}
	if a.limiter != nil {
		write = append(write, a.limiter.Middleware())
	}
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), h)
	}

	r.GET("/health", a.health.CheckHealth)
	r.Static(a.cfg.Upload.URLPrefix, a.cfg.Upload.Dir)

	// Identity
	r.POST("/login", a.auth.Login)
	r.GET("/me", middleware.AuthRequired(), a.auth.Me)

	// Users
	r.POST("/usuarios", a.users.Register)
	r.GET("/usuarios", a.users.List)
	r.GET("/usuarios/:id", a.users.GetByID)
	r.PUT("/usuarios/:id/foto", middleware.SelfOnly("id"), a.users.UpdatePhoto)
	r.PUT("/usuarios/:id/descricao", middleware.SelfOnly("id"), a.users.UpdateDescription)
	r.GET("/usuarios/:id/notificacoes", a.notification.ListForUser)
	r.GET("/usuarios/:id/conexoes", a.connections.ListForUser)

	// Projects
	r.POST("/projetos", a.projects.Create)
	r.GET("/projetos", a.projects.List)
	r.GET("/projetos/busca", a.projects.Search)
	r.GET("/projetos/:id", a.projects.GetByID)
	r.POST("/projetos/:id/imagens", a.projects.AddImages)
	r.GET("/projetos/:id/participantes", a.projects.Participants)

	// Likes and comments
	r.POST("/curtidas", limited(a.likes.Like)...)
	r.DELETE("/curtidas/:id", a.likes.Unlike)
	r.GET("/curtidas/:projetoId", a.likes.ListByProject)
	r.POST("/comentarios", limited(a.comments.Create)...)
	r.POST("/comentarios/conexao", limited(a.comments.CreateForConnection)...)
	r.GET("/comentarios/:projetoId", a.comments.ListByProject)
	r.DELETE("/comentarios/:id", a.comments.Delete)

	// Collaboration invites
	r.POST("/usuario-projeto", limited(a.notification.Invite)...)
	r.DELETE("/notificacoes/:id", a.notification.Dismiss)
	r.POST("/notificacoes/:id/aceitar-convite", a.notification.AcceptInvite)
	r.POST("/notificacoes/:id/recusar-convite", a.notification.DeclineInvite)

	// Connections
	r.POST("/conexoes", limited(a.connections.Create)...)
	r.PUT("/conexoes/:id/aceitar", a.connections.Accept)
	r.PUT("/conexoes/:id/recusar", a.connections.Decline)

	// Chats
	r.POST("/chats", a.chats.Create)
	r.GET("/chats/user/:userId", a.chats.ListForUser)
	r.GET("/chats/:chatId", a.chats.Get)
	r.GET("/chats/:chatId/messages", a.chats.ListMessages)
	r.POST("/chats/:chatId/messages", limited(a.chats.PostMessage)...)

	// Vagas
	r.POST("/vagas", a.vagas.Create)
	r.GET("/vagas", a.vagas.List)
	r.GET("/vagas/:id", a.vagas.GetByID)

	// Briefings
	r.POST("/briefings", a.briefings.Create)
	r.GET("/briefings", a.briefings.List)
	r.GET("/briefings/:id", a.briefings.GetByID)

	return r
}
