package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

func main() {
	fmt.Println("--- Logger Metrics Example ---")
	fmt.Println("Scrape http://localhost:9099/metrics while this runs.")

	logger := log.NewLogger()
	err := logger.InitWithDefaults(
		"enable_console=false",
		"enable_metrics=true",
		"metrics_addr=:9099",
		"level=debug",
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}

	levels := []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError}
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		lvl := levels[rand.Intn(len(levels))]
		logger.Push(lvl, "sample event seq={}", rand.Int63())
		time.Sleep(time.Millisecond)
	}

	fmt.Printf("Dropped: %d, queue depth: %d\n", logger.DroppedCount(), logger.QueueDepth())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := logger.Shutdown(ctx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
