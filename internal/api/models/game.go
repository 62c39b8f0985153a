package models

// StartRequest picks the player's mark for a new session.
type StartRequest struct {
	Mark string `json:"mark" binding:"required"`
}

// MoveRequest places the player's mark. Coordinates outside the board are
// accepted here and ignored by the game.
type MoveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// SessionResponse carries a newly issued session id.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}
