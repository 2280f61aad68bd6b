// FILE: example/fasthttp/main.go
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/N3ro47/lockfree-log"
	"github.com/N3ro47/lockfree-log/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger := log.NewLogger()
	err := logger.InitWithDefaults(
		"enable_file=true",
		"directory=/var/log/fasthttp",
		"level=info",
		"ring_capacity=2048",
	)
	if err != nil {
		panic(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = logger.Shutdown(ctx)
	}()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(log.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) log.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return log.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return log.LevelError
	}

	return compat.DetectLogLevel(msg)
}
