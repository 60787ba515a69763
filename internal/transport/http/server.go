package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/chat"
	"github.com/sagarrytclick-a11y/whatsapp-clone/internal/config"
	"github.com/sagarrytclick-a11y/whatsapp-clone/web"
)

// NewServer builds the HTTP server with the chat API and the embedded client.
func NewServer(svc *chat.Service, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(LoggerMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))

	handlers := NewMessageHandlers(svc, logger)

	r.GET("/health", healthHandler)
	r.GET("/", indexHandler)
	r.POST("/api/send-message", handlers.SendMessage)
	r.GET("/api/get-messages", handlers.GetMessages)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func indexHandler(c *gin.Context) {
	c.Data(stdhttp.StatusOK, "text/html; charset=utf-8", web.Index)
}
