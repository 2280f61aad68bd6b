// FILE: example/gnet/main.go
package main

import (
	"context"
	"time"

	log "github.com/N3ro47/lockfree-log"
	"github.com/N3ro47/lockfree-log/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger := log.NewLogger()
	err := logger.InitWithDefaults(
		"enable_file=true",
		"directory=/var/log/gnet",
		"level=debug",
	)
	if err != nil {
		panic(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = logger.Shutdown(ctx)
	}()

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
