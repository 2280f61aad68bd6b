package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

// Simulate rapid reconfiguration while logging continuously.
func main() {
	var count atomic.Int64

	if err := log.InitWithDefaults("enable_console=false"); err != nil {
		fmt.Printf("Initial Init error: %v\n", err)
		return
	}

	go func() {
		for i := 0; ; i++ {
			log.Info("test log {}", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Trigger multiple reconfigurations rapidly, cycling ring capacities
	// to force Engine replacement under the new config each time.
	capacities := []int{128, 256, 512, 1024, 2048}
	for i := 0; i < 10; i++ {
		cap := capacities[i%len(capacities)]
		override := fmt.Sprintf("ring_capacity=%d", cap)
		if err := log.ApplyConfigString(override); err != nil {
			fmt.Printf("ApplyConfigString error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	fmt.Printf("Total logs attempted: %d\n", count.Load())
	fmt.Printf("Dropped on active engine: %d\n", log.DroppedCount())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := log.Shutdown(ctx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
