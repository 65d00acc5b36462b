package model

import "time"

// AppState is the singleton lock record. It is created once (implicitly, as
// the unlocked zero state) and mutated only by the lock/unlock operation.
type AppState struct {
	IsLocked bool       `json:"is_locked"`
	LockedAt *time.Time `json:"locked_at"`
	LockedBy *Role      `json:"locked_by"`
}
