// FILE: template_test.go
package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplateAutoIndex(t *testing.T) {
	args := []any{"a", "b", "c"}
	out := renderTemplate(nil, "{} {} {}", len(args), func(out []byte, idx int, spec placeholderSpec) []byte {
		return appendValueSpec(out, args[idx], spec)
	})
	assert.Equal(t, "a b c", string(out))
}

func TestRenderTemplateExplicitIndex(t *testing.T) {
	args := []any{"first", "second"}
	out := renderTemplate(nil, "{1} {0}", len(args), func(out []byte, idx int, spec placeholderSpec) []byte {
		return appendValueSpec(out, args[idx], spec)
	})
	assert.Equal(t, "second first", string(out))
}

func TestRenderTemplateEscapedBraces(t *testing.T) {
	out := renderTemplate(nil, "{{literal}} {}", 1, func(out []byte, idx int, spec placeholderSpec) []byte {
		return appendValueSpec(out, "value", spec)
	})
	assert.Equal(t, "{literal} value", string(out))
}

func TestRenderTemplateOutOfRangeIndexVerbatim(t *testing.T) {
	out := renderTemplate(nil, "{5}", 1, func(out []byte, idx int, spec placeholderSpec) []byte {
		return appendValueSpec(out, "x", spec)
	})
	assert.Equal(t, "{5}", string(out))
}

func TestRenderTemplateUnterminatedPlaceholder(t *testing.T) {
	out := renderTemplate(nil, "prefix {", 0, func(out []byte, idx int, spec placeholderSpec) []byte {
		return out
	})
	assert.Equal(t, "prefix {", string(out))
}

func TestParsePlaceholderTypeHints(t *testing.T) {
	spec, ok := parsePlaceholder("0:08.2f")
	assert.True(t, ok)
	assert.Equal(t, 0, spec.index)
	assert.True(t, spec.hasIndex)
	assert.Equal(t, 8, spec.width)
	assert.Equal(t, 2, spec.precision)
	assert.Equal(t, byte('f'), spec.typeHint)
}

func TestAppendValueSpecTypeHintHex(t *testing.T) {
	out := appendValueSpec(nil, 255, placeholderSpec{typeHint: 'x'})
	assert.Equal(t, "ff", string(out))
}

func TestAppendValueSpecWidthPadding(t *testing.T) {
	out := appendValueSpec(nil, "x", placeholderSpec{hasWidth: true, width: 5})
	assert.Equal(t, "    x", string(out))
}
