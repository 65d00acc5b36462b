package main

import (
	"github.com/jcruden/live-leaderboard/internal/cli"
)

func main() {
	cli.Execute()
}
