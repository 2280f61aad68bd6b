// FILE: example/reconfig/main.go
package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

// Simulate rapid reconfiguration
func main() {
	var count atomic.Int64

	logger := log.NewLogger()

	if err := logger.InitWithDefaults("enable_console=false"); err != nil {
		fmt.Printf("Initial Init error: %v\n", err)
		return
	}

	go func() {
		for i := 0; ; i++ {
			logger.Info("test log {}", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	capacities := []int{128, 256, 512, 1024, 2048}
	for i := 0; i < 10; i++ {
		override := fmt.Sprintf("ring_capacity=%d", capacities[i%len(capacities)])
		if err := logger.ApplyConfigString(override); err != nil {
			fmt.Printf("Reconfigure error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	fmt.Printf("Total logs attempted: %d\n", count.Load())
	fmt.Printf("Dropped on active engine: %d\n", logger.DroppedCount())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := logger.Shutdown(ctx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
