package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/constants"
	"upi-qr-pay/internal/handlers"
)

// Server serves the payment form over HTTP
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer creates a new HTTP server for the web handler
func NewServer(cfg config.HTTPConfig, web *handlers.WebHandler, logger *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      NewRouter(web, logger),
			ReadTimeout:  constants.ReadTimeout * time.Second,
			WriteTimeout: constants.WriteTimeout * time.Second,
		},
		logger: logger,
	}
}

// NewRouter builds the gin engine with logging and recovery middleware
func NewRouter(web *handlers.WebHandler, logger *logrus.Logger) *gin.Engine {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	web.Register(r)

	return r
}

// Start listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Infof("Listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// requestLogger logs each request through logrus
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
			"client":   c.ClientIP(),
		}).Info("HTTP request")
	}
}
