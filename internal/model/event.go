package model

import "time"

// EventResult records the outcome of a score delta attempt
type EventResult string

const (
	// ResultApplied means the delta was added to the player's total
	ResultApplied EventResult = "applied"
	// ResultBlockedLocked means the delta was rejected by the global lock
	ResultBlockedLocked EventResult = "blocked_locked"
	// ResultInvalid means the delta targeted a player that does not exist
	ResultInvalid EventResult = "invalid"
)

// ScoreEvent is an append-only audit row. Every delta attempt produces one,
// whether or not it mutated a player; events are never updated or deleted.
type ScoreEvent struct {
	PlayerID   PlayerID    `json:"player_id"`
	Delta      int         `json:"delta"`
	Result     EventResult `json:"result"`
	RecordedAt time.Time   `json:"recorded_at"`
}
