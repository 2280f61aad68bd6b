// FILE: cmd/collector/main.go
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"sync"
	"time"

	log "github.com/N3ro47/lockfree-log"
	"github.com/N3ro47/lockfree-log/compat"
	"github.com/panjf2000/gnet/v2"
)

// collector is a standalone gnet event-loop server that reads plain
// newline-delimited text over raw TCP and re-emits every line it
// receives into its own Engine/FileSink pair, so several processes can
// ship their records to one durable collector. It does not parse HTTP,
// so HTTPSink's batched POSTs are not a matching client.
type collector struct {
	gnet.BuiltinEventEngine
	logger *log.Logger

	mu  sync.Mutex
	buf map[gnet.Conn]*bytes.Buffer
}

func newCollector(logger *log.Logger) *collector {
	return &collector{
		logger: logger,
		buf:    make(map[gnet.Conn]*bytes.Buffer),
	}
}

func (c *collector) OnOpen(conn gnet.Conn) ([]byte, gnet.Action) {
	c.mu.Lock()
	c.buf[conn] = new(bytes.Buffer)
	c.mu.Unlock()
	return nil, gnet.None
}

func (c *collector) OnClose(conn gnet.Conn, _ error) gnet.Action {
	c.mu.Lock()
	delete(c.buf, conn)
	c.mu.Unlock()
	return gnet.None
}

// OnTraffic reassembles a connection's byte stream and re-emits every
// complete, newline-terminated record line it accumulates. A batch that
// arrives split across TCP segments is held in the connection's buffer
// until its terminating newline shows up.
func (c *collector) OnTraffic(conn gnet.Conn) gnet.Action {
	data, _ := conn.Next(-1)

	c.mu.Lock()
	pending, ok := c.buf[conn]
	if !ok {
		pending = new(bytes.Buffer)
		c.buf[conn] = pending
	}
	pending.Write(data)
	lines := drainCompleteLines(pending)
	c.mu.Unlock()

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		c.logger.Info("{}", string(line))
	}
	return gnet.None
}

// drainCompleteLines pops every newline-terminated line out of buf,
// leaving any trailing partial line in place for the next read.
func drainCompleteLines(buf *bytes.Buffer) [][]byte {
	var lines [][]byte
	for {
		b := buf.Bytes()
		i := bytes.IndexByte(b, '\n')
		if i < 0 {
			break
		}
		line := make([]byte, i)
		copy(line, b[:i])
		lines = append(lines, line)
		buf.Next(i + 1)
	}
	return lines
}

func main() {
	addr := flag.String("addr", "tcp://127.0.0.1:9100", "listen address for incoming batches")
	directory := flag.String("directory", "/var/log/lockfree-log-collector", "directory the collector writes its own rotated log file into")
	flag.Parse()

	logger := log.NewLogger()
	if err := logger.InitWithDefaults(
		"enable_console=false",
		"enable_file=true",
		"directory="+*directory,
		"level=debug",
	); err != nil {
		panic(err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = logger.Shutdown(ctx)
	}()

	c := newCollector(logger)
	gnetAdapter := compat.NewGnetAdapter(logger)

	fmt.Printf("collector listening on %s, writing into %s\n", *addr, *directory)
	if err := gnet.Run(
		c,
		*addr,
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	); err != nil {
		panic(err)
	}
}
