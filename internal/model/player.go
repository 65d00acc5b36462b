package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a contestant on the leaderboard.
// ScoreTotal is the running sum of all applied score events for the player.
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	ScoreTotal  int       `json:"score_total"`
	UpdatedAt   time.Time `json:"updated_at"`
}
