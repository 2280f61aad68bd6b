package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

const configFile = "simple_config.toml"
const configBasePath = "logging" // Base path for log settings in config

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[logging]
  level = "debug"
  directory = "./simple_logs"
  enable_file = true
  extension = "log"
  ring_capacity = 1024
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	if err := log.InitFromFile(configFile, configBasePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logger initialized.")

	log.Debug("this is a debug message user_id={}", 123)
	log.Info("application starting...")
	log.Warn("potential issue detected threshold={}", 0.95)
	log.Error("an error occurred code={}", 500)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log.Info("goroutine started id={}", id)
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			log.Info("goroutine finished id={}", id)
		}(i)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	fmt.Println("Shutting down logger...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := log.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	} else {
		fmt.Println("Logger shutdown complete.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in './simple_logs' and the config file '%s'.\n", configFile)
}
