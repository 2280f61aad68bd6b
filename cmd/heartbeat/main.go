package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

func main() {
	if err := os.MkdirAll("./logs", 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create test logs directory: %v\n", err)
		os.Exit(1)
	}

	// Test cycle: disable -> PROC -> PROC+DISK -> PROC+DISK+SYS -> PROC+DISK -> PROC -> disable
	levels := []struct {
		level       int
		description string
	}{
		{0, "Heartbeats disabled"},
		{1, "PROC heartbeats only"},
		{2, "PROC+DISK heartbeats"},
		{3, "PROC+DISK+SYS heartbeats"},
		{2, "PROC+DISK heartbeats (reducing from 3)"},
		{1, "PROC heartbeats only (reducing from 2)"},
		{0, "Heartbeats disabled (final)"},
	}

	logger := log.NewLogger()
	started := false

	for _, levelConfig := range levels {
		overrides := []string{
			"enable_file=true",
			"directory=./logs",
			"level=debug",
			"heartbeat_interval_s=5",
			fmt.Sprintf("heartbeat_level=%d", levelConfig.level),
		}

		var err error
		if !started {
			err = logger.InitWithDefaults(overrides...)
			started = true
		} else {
			err = logger.ApplyConfigString(overrides...)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n--- Testing heartbeat level %d: %s ---\n", levelConfig.level, levelConfig.description)
		logger.Info("heartbeat test started level={} description={}", levelConfig.level, levelConfig.description)

		for j := 0; j < 10; j++ {
			logger.Debug("debug test log iteration={} level={}", j, levelConfig.level)
			logger.Info("info test log iteration={} level={}", j, levelConfig.level)
			logger.Warn("warn test log iteration={} level={}", j, levelConfig.level)
			logger.Error("error test log iteration={} level={}", j, levelConfig.level)
			time.Sleep(100 * time.Millisecond)
		}

		waitTime := 6 * time.Second
		fmt.Printf("Waiting %v for heartbeats to generate...\n", waitTime)
		time.Sleep(waitTime)

		logger.Info("heartbeat test completed for level={}", levelConfig.level)
	}

	if err := logger.ShutdownTimeout(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to shut down logger: %v\n", err)
	}

	fmt.Println("\nHeartbeat test program completed successfully")
	fmt.Println("Check logs directory for generated log files")
}
