// FILE: example/raw/main.go
package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

// TestPayload defines a struct for testing complex type serialization.
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Logger Argument Capture Test ---")

	// Record 1: a byte slice with special characters (newline, tab, null).
	byteRecord := []byte("binary\ndata\twith\x00null")

	// Record 2: a struct containing a uint64, a string, and a map.
	structRecord := TestPayload{
		RequestID: 9223372036854775807,
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	}

	fmt.Println("\n[1] Testing arbitrary-argument capture via Logger.Info()")
	logger := log.NewLogger()
	err := logger.InitWithDefaults("enable_console=true", "console_target=stdout", "enable_file=false")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}

	logger.Info("byte record -> {}", byteRecord)
	logger.Info("struct record -> {}", structRecord)
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := logger.Shutdown(ctx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}

	fmt.Println("\n--- Test Complete ---")
}
