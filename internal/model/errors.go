package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Scoring errors
	ErrScoringLocked = errors.New("scoring is locked")
	ErrInvalidDelta  = errors.New("delta must be -1, 1 or 10")
)
