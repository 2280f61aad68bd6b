// FILE: httpsink.go
package log

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/sync/semaphore"
)

// maxInflightHTTPBatches bounds how many batch POSTs a single HTTPSink may
// have in flight at once. Beyond that, Write falls back to sending on the
// calling goroutine (the Engine's consumer) so a slow collector slows the
// drain instead of growing an unbounded goroutine pile.
const maxInflightHTTPBatches = 4

// HTTPSink batches formatted records and POSTs them to a collector
// endpoint, built on fasthttp's client the way the rest of the pack uses
// it for outbound requests. A batch is sent when it reaches batchSize, or
// on the first Write after interval has elapsed since the last send, or on
// Flush; there is no timer, so a partial batch waits for one of those.
// Sends that can get a
// slot run off the Engine's consumer goroutine so a slow collector does
// not stall the hot path.
type HTTPSink struct {
	mu       sync.Mutex
	endpoint string
	client   *fasthttp.Client
	buf      [][]byte
	batch    int
	interval time.Duration
	lastSend time.Time
	sem      *semaphore.Weighted
}

// NewHTTPSink builds an HTTPSink posting batches to endpoint. batchSize
// and interval of zero fall back to sane defaults.
func NewHTTPSink(endpoint string, batchSize int, interval time.Duration) *HTTPSink {
	if batchSize <= 0 {
		batchSize = 64
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &HTTPSink{
		endpoint: endpoint,
		client:   &fasthttp.Client{},
		batch:    batchSize,
		interval: interval,
		lastSend: time.Now(),
		sem:      semaphore.NewWeighted(maxInflightHTTPBatches),
	}
}

func (s *HTTPSink) Write(b []byte, _ Level) error {
	s.mu.Lock()
	cp := make([]byte, len(b))
	copy(cp, b)
	s.buf = append(s.buf, cp)

	shouldSend := len(s.buf) >= s.batch || time.Since(s.lastSend) >= s.interval
	var payload [][]byte
	if shouldSend {
		payload = s.buf
		s.buf = nil
		s.lastSend = time.Now()
	}
	s.mu.Unlock()

	if payload == nil {
		return nil
	}
	s.dispatch(payload)
	return nil
}

// dispatch sends a completed batch off-goroutine when a slot is free,
// falling back to a synchronous send when the inflight cap is reached.
func (s *HTTPSink) dispatch(payload [][]byte) {
	if !s.sem.TryAcquire(1) {
		if err := s.send(payload); err != nil {
			internalLog("http sink send failed: %v\n", err)
		}
		return
	}
	go func() {
		defer s.sem.Release(1)
		if err := s.send(payload); err != nil {
			internalLog("http sink send failed: %v\n", err)
		}
	}()
}

func (s *HTTPSink) send(lines [][]byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/octet-stream")

	body := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		body.Reset()
		bufferPool.Put(body)
	}()
	for _, line := range lines {
		body.Write(line)
	}
	req.SetBody(body.Bytes())

	return s.client.Do(req, resp)
}

// Flush sends any buffered records immediately and then waits for every
// asynchronous send already in flight to return.
func (s *HTTPSink) Flush() error {
	s.mu.Lock()
	payload := s.buf
	s.buf = nil
	s.lastSend = time.Now()
	s.mu.Unlock()

	var err error
	if len(payload) > 0 {
		err = s.send(payload)
	}
	if s.sem.Acquire(context.Background(), maxInflightHTTPBatches) == nil {
		s.sem.Release(maxInflightHTTPBatches)
	}
	return err
}
