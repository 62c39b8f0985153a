package server

import (
	"ctchen222/growing-tic-tac-toe/internal/api/controller"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("server")

//go:embed web/index.html
var indexHTML []byte

type Server struct {
	engine   *gin.Engine
	sessions controller.SessionService
	upgrader websocket.Upgrader
}

// NewServer wires the page, the JSON API and the WebSocket endpoint onto a
// gin engine.
func NewServer(sessions controller.SessionService) *Server {
	s := &Server{
		engine:   gin.New(),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.registerHandlers()
	return s
}

// Engine exposes the gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the engine wrapped with OpenTelemetry HTTP instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, "http.server")
}

func (s *Server) registerHandlers() {
	gameController := controller.NewGameController(s.sessions)

	s.engine.Use(gin.Recovery(), requestLogger())

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/ws", s.handleWebSocket)

	api := s.engine.Group("/api")
	{
		api.POST("/session", gameController.NewSession)
		api.GET("/state", gameController.State)
		api.POST("/start", gameController.Start)
		api.POST("/move", gameController.Move)
		api.POST("/reset", gameController.Reset)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// requestLogger logs every request through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.DebugContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
