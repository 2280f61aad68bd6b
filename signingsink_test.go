// FILE: signingsink_test.go
package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningSinkAppendsDigestAndForwards(t *testing.T) {
	inner := NewMemorySink()
	s := NewSigningSink(inner)

	require.NoError(t, s.Write([]byte("record one"), LevelInfo))
	require.NoError(t, s.Write([]byte("record two"), LevelInfo))

	lines := inner.Lines()
	require.Len(t, lines, 2)
	assert.True(t, bytes.Contains(lines[0], []byte("record one #")))
	assert.True(t, bytes.Contains(lines[1], []byte("record two #")))
}

func TestSigningSinkChainDependsOnPriorRecords(t *testing.T) {
	inner1 := NewMemorySink()
	s1 := NewSigningSink(inner1)
	require.NoError(t, s1.Write([]byte("a"), LevelInfo))
	require.NoError(t, s1.Write([]byte("b"), LevelInfo))
	digest1 := s1.Digest()

	inner2 := NewMemorySink()
	s2 := NewSigningSink(inner2)
	require.NoError(t, s2.Write([]byte("a"), LevelInfo))
	require.NoError(t, s2.Write([]byte("c"), LevelInfo))
	digest2 := s2.Digest()

	assert.NotEqual(t, digest1, digest2)
}

func TestSigningSinkFlushDelegates(t *testing.T) {
	inner := NewMemorySink()
	s := NewSigningSink(inner)
	require.NoError(t, s.Flush())
	assert.Equal(t, 1, inner.Flushes())
}
