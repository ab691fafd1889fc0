package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumen-lab/project-lumen/internal/core/queryindex"
)

type Server struct {
	Engine *gin.Engine
	Addr   string
	index  *queryindex.Trie
}

func New(addr string, index *queryindex.Trie, mode string) *Server {
	// Set Gin mode based on configuration
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	s := &Server{
		Engine: r,
		Addr:   addr,
		index:  index,
	}

	// Health check endpoint reporting index readiness
	r.GET("/health", s.healthHandler)

	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	// The server only starts serving after ingestion completes, so an
	// unfinalized index here means a wiring bug, not a transient state.
	if s.index == nil || !s.index.Finalized() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "index not finalized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"distinct_queries": s.index.DistinctQueries(),
	})
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
