package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zeusync/softbody/internal/core/observability/log"
	"github.com/zeusync/softbody/internal/core/systems/physics"
)

type bodySummary struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Center   physics.Vec2 `json:"center"`
	Points   int          `json:"points"`
	Softened bool         `json:"softened"`
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/snapshot", s.handleSnapshot)
	s.engine.GET("/ws", s.handleWebSocket)

	bodies := s.engine.Group("/bodies")
	{
		bodies.GET("", s.handleBodies)
		bodies.GET("/:id", s.handleBody)
		bodies.POST("/:id/push", s.handlePush)
		bodies.POST("/:id/commands", s.handleCommand)
	}
}

// requestLogger logs every request at debug level through the server logger.
func requestLogger(logger log.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			log.String("method", c.Request.Method),
			log.String("path", c.FullPath()),
			log.Int("status", c.Writer.Status()),
			log.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"frame":   s.runner.Latest().Frame,
		"clients": s.hub.Len(),
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.runner.Latest())
}

func (s *Server) handleBodies(c *gin.Context) {
	snap := s.runner.Latest()
	out := make([]bodySummary, 0, len(snap.Bodies))
	for _, b := range snap.Bodies {
		out = append(out, summarize(b))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleBody(c *gin.Context) {
	id, ok := s.bodyID(c)
	if !ok {
		return
	}
	for _, b := range s.runner.Latest().Bodies {
		if b.ID == id.String() {
			c.JSON(http.StatusOK, b)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "body not found"})
}

func (s *Server) handlePush(c *gin.Context) {
	id, ok := s.bodyID(c)
	if !ok {
		return
	}
	var force physics.Vec2
	if err := c.ShouldBindJSON(&force); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.submit(c, Command{Kind: CommandPush, Body: id, Vector: force})
}

func (s *Server) handleCommand(c *gin.Context) {
	id, ok := s.bodyID(c)
	if !ok {
		return
	}
	var cmd Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd.Body = id
	s.submit(c, cmd)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	s.hub.serveWS(c.Writer, c.Request, func(cmd Command) error {
		if !s.runner.HasBody(cmd.Body) {
			return physics.ErrBodyNotFound
		}
		return s.runner.Submit(cmd)
	})
}

func (s *Server) bodyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body id"})
		return uuid.Nil, false
	}
	if !s.runner.HasBody(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "body not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) submit(c *gin.Context, cmd Command) {
	err := s.runner.Submit(cmd)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"queued": cmd.Kind})
	case errors.Is(err, ErrQueueFull):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func summarize(b physics.BodySnapshot) bodySummary {
	return bodySummary{
		ID:       b.ID,
		Name:     b.Name,
		Center:   b.Center,
		Points:   len(b.Points),
		Softened: b.Softened,
	}
}
