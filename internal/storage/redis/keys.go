package redis

import (
	"fmt"

	"github.com/jcruden/live-leaderboard/internal/model"
)

// Key prefix for all leaderboard data
const keyPrefix = "leaderboard"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// appStateKey returns the Redis key for the AppState singleton
func appStateKey() string {
	return fmt.Sprintf("%s:app_state", keyPrefix)
}

// scoreEventsKey returns the Redis key for a player's audit event list
func scoreEventsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:score_events:%s", keyPrefix, playerID)
}
