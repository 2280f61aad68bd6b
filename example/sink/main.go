// FILE: main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/N3ro47/lockfree-log"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

// main orchestrates the different test scenarios.
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}
	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		fmt.Printf("Fatal: could not create log directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("--- Running Logger Test Suite ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	fmt.Println("--- SCENARIO 1: Testing configurations in isolation (new logger per test) ---")
	testFileOnly()
	testStdoutOnly()
	testStderrOnly()
	testNoOutput()

	fmt.Println("\n--- SCENARIO 2: Testing reconfiguration on a single logger instance ---")
	testReconfigurationTransitions()

	fmt.Println("\n--- Logger Test Suite Complete ---")
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

// testFileOnly tests writing only to a file.
func testFileOnly() {
	logger := log.NewLogger()
	initPhase(logger, "1.1: File-Only",
		"enable_console=false",
		"enable_file=true",
		"directory="+logDirectory,
		"name=file_only_log",
		"level=debug",
	)
	runPhase(logger, "1.1: File-Only")
	shutdownLogger(logger, "1.1: File-Only")
}

// testStdoutOnly tests writing only to standard output.
func testStdoutOnly() {
	logger := log.NewLogger()
	initPhase(logger, "1.2: Stdout-Only",
		"enable_console=true",
		"console_target=stdout",
		"enable_file=false",
		"level=debug",
	)
	runPhase(logger, "1.2: Stdout-Only")
	shutdownLogger(logger, "1.2: Stdout-Only")
}

// testStderrOnly tests writing only to standard error.
func testStderrOnly() {
	fmt.Fprintln(os.Stderr, "\n---")
	logger := log.NewLogger()
	initPhase(logger, "1.3: Stderr-Only",
		"enable_console=true",
		"console_target=stderr",
		"enable_file=false",
		"level=debug",
	)
	runPhase(logger, "1.3: Stderr-Only")
	fmt.Fprintln(os.Stderr, "---")
	shutdownLogger(logger, "1.3: Stderr-Only")
}

// testNoOutput tests a configuration where every sink is disabled.
func testNoOutput() {
	logger := log.NewLogger()
	initPhase(logger, "1.4: No-Output (logs should be dropped into the null sink)",
		"enable_console=false",
		"enable_file=false",
		"level=debug",
	)
	runPhase(logger, "1.4: No-Output")
	shutdownLogger(logger, "1.4: No-Output")
}

// testReconfigurationTransitions exercises hot-swapping the active engine.
func testReconfigurationTransitions() {
	logger := log.NewLogger()

	initPhase(logger, "2.1: Reconfig - Initial (Dual File+Stdout)",
		"enable_console=true",
		"enable_file=true",
		"directory="+logDirectory,
		"name=reconfig_log",
		"level=debug",
	)
	runPhase(logger, "2.1: Reconfig - Initial (Dual File+Stdout)")

	reconfigPhase(logger, "2.2: Reconfig - Transition to Stdout-Only",
		"enable_console=true",
		"enable_file=false",
	)
	runPhase(logger, "2.2: Reconfig - Transition to Stdout-Only")

	reconfigPhase(logger, "2.3: Reconfig - Transition back to Dual (File+Stdout)",
		"enable_console=true",
		"enable_file=true",
		"directory="+logDirectory,
		"name=reconfig_log",
	)
	runPhase(logger, "2.3: Reconfig - Transition back to Dual (File+Stdout)")

	fmt.Println("\n[Phase 2.4: Reconfig - Testing log levels on final state]")
	logger.Debug("final-state: this is a debug message")
	logger.Info("final-state: this is an info message")
	logger.Warn("final-state: this is a warning message")
	logger.Error("final-state: this is an error message")
	time.Sleep(logInterval)

	shutdownLogger(logger, "2: Reconfiguration")
}

func initPhase(logger *log.Logger, phaseName string, overrides ...string) {
	fmt.Printf("\n[Phase %s]\n", phaseName)
	fmt.Println("  Config:", overrides)
	if err := logger.InitWithDefaults(overrides...); err != nil {
		fmt.Printf("  ERROR: Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}

func reconfigPhase(logger *log.Logger, phaseName string, overrides ...string) {
	fmt.Printf("\n[Phase %s]\n", phaseName)
	fmt.Println("  Config:", overrides)
	if err := logger.ApplyConfigString(overrides...); err != nil {
		fmt.Printf("  ERROR: Failed to reconfigure logger: %v\n", err)
		os.Exit(1)
	}
}

func runPhase(logger *log.Logger, phaseName string) {
	logger.Info("event=start_phase name={}", phaseName)
	time.Sleep(logInterval)
	logger.Info("event=end_phase name={}", phaseName)
	time.Sleep(logInterval)
}

func shutdownLogger(l *log.Logger, phaseName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := l.Shutdown(ctx); err != nil {
		fmt.Printf("  WARNING: Shutdown error in phase '%s': %v\n", phaseName, err)
	}
}
