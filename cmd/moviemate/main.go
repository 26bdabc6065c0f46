package main

import (
	"log"

	"github.com/Etherlyvan/movie-mate/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ moviemate failed to start: %v", err)
	}
}
