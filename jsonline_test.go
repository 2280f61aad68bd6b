// FILE: jsonline_test.go
package log

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSONLineProducesValidObject(t *testing.T) {
	buf := renderJSONLine(nil, "INFO", 7, "hello world")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf, &decoded))
	assert.Equal(t, "INFO", decoded["level"])
	assert.Equal(t, float64(7), decoded["goid"])
	assert.Equal(t, "hello world", decoded["message"])
}

func TestRenderJSONLineAppendsToExistingBuffer(t *testing.T) {
	prefix := []byte("x")
	buf := renderJSONLine(prefix, "WARN", 1, "msg")
	assert.True(t, len(buf) > len("x"))
	assert.Equal(t, byte('x'), buf[0])
}
