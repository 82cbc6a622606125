package main

import (
	"context"
	"os"
)

// @title        VoiceCoach API
// @version      1.0
// @description  Scores recorded interview answers and returns coaching feedback.
// @BasePath     /
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
