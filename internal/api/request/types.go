package request

// LoginRequest is the request body for the passcode login
type LoginRequest struct {
	Passcode string `json:"passcode"`
}

// ScoreRequest is the request body for applying a score delta
type ScoreRequest struct {
	PlayerID string `json:"player_id"`
	Delta    int    `json:"delta"`
}

// CreatePlayerRequest is the request body for adding a player to the roster
type CreatePlayerRequest struct {
	DisplayName string `json:"display_name"`
}
