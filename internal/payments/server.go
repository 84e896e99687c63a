package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server receives pre-verified payment events over HTTP. Signature checking
// happens upstream; this listener only decodes and dispatches.
type Server struct {
	handler *Handler
	logger  *zap.Logger
	engine  *gin.Engine
}

func NewServer(handler *Handler, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		handler: handler,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.engine.POST("/payments/events", s.postEvent)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return s
}

func (s *Server) postEvent(c *gin.Context) {
	var ev Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid event payload"})
		return
	}

	if err := s.handler.HandleEvent(c.Request.Context(), ev); err != nil {
		s.logger.Error("failed to handle payment event",
			zap.Error(err),
			zap.String("type", ev.Type),
			zap.Int64("user_id", ev.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
