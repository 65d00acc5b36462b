package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jcruden/live-leaderboard/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case []response.Player:
		o.printLeaderboard(v)
	case response.AppState:
		o.printState(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Score: %d\n", p.ScoreTotal)
}

func (o *Output) printLeaderboard(players []response.Player) {
	if len(players) == 0 {
		fmt.Println("No players yet")
		return
	}

	for i, p := range players {
		fmt.Printf("%3d. %-24s %6d\n", i+1, p.DisplayName, p.ScoreTotal)
	}
}

func (o *Output) printState(s response.AppState) {
	if !s.IsLocked {
		fmt.Println("Scoring: open")
		return
	}

	fmt.Println("Scoring: LOCKED")
	if s.LockedBy != nil {
		fmt.Printf("Locked by: %s\n", *s.LockedBy)
	}
	if s.LockedAt != nil {
		fmt.Printf("Locked at: %s\n", s.LockedAt.Format("2006-01-02 15:04:05"))
	}
}
