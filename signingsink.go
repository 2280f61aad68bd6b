// FILE: signingsink.go
package log

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"
)

// SigningSink wraps another Sink in a tamper-evident hash chain: each
// record's digest folds in the previous digest, so altering or deleting
// any past entry from the underlying sink's storage changes every digest
// after it. It does not itself persist anything; wrap a FileSink or
// SQLSink with it.
type SigningSink struct {
	mu    sync.Mutex
	inner Sink
	chain [32]byte
}

// NewSigningSink wraps inner with a SHA3-256 hash chain seeded from the
// zero digest.
func NewSigningSink(inner Sink) *SigningSink {
	return &SigningSink{inner: inner}
}

func (s *SigningSink) Write(b []byte, level Level) error {
	s.mu.Lock()
	h := sha3.New256()
	h.Write(s.chain[:])
	h.Write(b)
	sum := h.Sum(nil)
	copy(s.chain[:], sum)
	digest := make([]byte, len(sum))
	copy(digest, sum)
	s.mu.Unlock()

	stamped := make([]byte, 0, len(b)+len(digest)*2+3)
	stamped = append(stamped, b...)
	stamped = append(stamped, " #"...)
	stamped = appendHex(stamped, digest)
	stamped = append(stamped, '\n')

	return s.inner.Write(stamped, level)
}

func (s *SigningSink) Flush() error {
	return s.inner.Flush()
}

// Digest returns the current chain head, the running digest over every
// record written so far.
func (s *SigningSink) Digest() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.chain))
	copy(out, s.chain[:])
	return out
}

func appendHex(dst, src []byte) []byte {
	enc := make([]byte, hex.EncodedLen(len(src)))
	hex.Encode(enc, src)
	return append(dst, enc...)
}
