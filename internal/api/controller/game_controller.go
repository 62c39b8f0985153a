package controller

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/api/models"
	"ctchen222/growing-tic-tac-toe/internal/api/response"
	"ctchen222/growing-tic-tac-toe/internal/game"
	"ctchen222/growing-tic-tac-toe/internal/session"
	"ctchen222/growing-tic-tac-toe/pkg/proto"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie holds the browser's session id.
const SessionCookie = "ttt_session"

// SessionService is the game API the controller drives.
type SessionService interface {
	Start(ctx context.Context, id string, mark game.PlayerMark) (*session.View, error)
	Move(ctx context.Context, id string, row, col int) (*session.View, error)
	Reset(ctx context.Context, id string) (*session.View, error)
	State(ctx context.Context, id string) (*session.View, error)
}

// GameController handles game-related HTTP requests.
type GameController struct {
	sessions SessionService
}

// NewGameController creates a new GameController.
func NewGameController(sessions SessionService) *GameController {
	return &GameController{
		sessions: sessions,
	}
}

// NewSession issues a fresh session id.
func (gc *GameController) NewSession(c *gin.Context) {
	id := uuid.New().String()
	setSessionCookie(c, id)
	response.SuccessResponse(c, models.SessionResponse{SessionID: id})
}

// State handles the current-state endpoint.
func (gc *GameController) State(c *gin.Context) {
	id := sessionID(c)
	view, err := gc.sessions.State(c.Request.Context(), id)
	gc.respond(c, id, view, err)
}

// Start handles the mark-selection endpoint.
func (gc *GameController) Start(c *gin.Context) {
	var req models.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id := sessionID(c)
	view, err := gc.sessions.Start(c.Request.Context(), id, game.PlayerMark(req.Mark))
	gc.respond(c, id, view, err)
}

// Move handles the player-move endpoint.
func (gc *GameController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id := sessionID(c)
	view, err := gc.sessions.Move(c.Request.Context(), id, *req.Row, *req.Col)
	gc.respond(c, id, view, err)
}

// Reset handles the back-to-start endpoint.
func (gc *GameController) Reset(c *gin.Context) {
	id := sessionID(c)
	view, err := gc.sessions.Reset(c.Request.Context(), id)
	gc.respond(c, id, view, err)
}

func (gc *GameController) respond(c *gin.Context, id string, view *session.View, err error) {
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "session operation failed", "session.id", id, "path", c.FullPath(), "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "session unavailable")
		return
	}
	response.SuccessResponse(c, proto.NewUpdate(view.Snapshot, view.Result))
}

// sessionID returns the caller's session id, issuing one when the cookie is
// missing or malformed.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.New().String()
	setSessionCookie(c, id)
	return id
}

// setSessionCookie sets a browser-session cookie, gone when the browser closes.
func setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
}
