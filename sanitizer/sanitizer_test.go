package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePolicyRawPassesThrough(t *testing.T) {
	s := New().Policy(PolicyRaw)
	assert.Equal(t, "hello\x00world\n", s.Sanitize("hello\x00world\n"))
}

func TestSanitizePolicyTxtHexEncodesNonPrintable(t *testing.T) {
	s := New().Policy(PolicyTxt)

	assert.Equal(t, "test<00>data", s.Sanitize("test\x00data"))
	assert.Equal(t, "bell<07>tab<09>form<0c>", s.Sanitize("bell\x07tab\x09form\x0c"))
	assert.Equal(t, "Hello World 123!@#", s.Sanitize("Hello World 123!@#"))
	assert.Equal(t, "Hello 世界 ✓", s.Sanitize("Hello 世界 ✓"))
	assert.Equal(t, "line1<c285>line2", s.Sanitize("line1line2"))
}

func TestSanitizePolicyShellStripsMetacharactersAndWhitespace(t *testing.T) {
	s := New().Policy(PolicyShell)

	assert.Equal(t, "clean\x00\x07txt", s.Sanitize("clean\x00\x07\ntxt"))
	assert.Equal(t, "helloworld", s.Sanitize("hello world"))
	assert.Equal(t, "rm-rfwhoamicat", s.Sanitize("rm -rf; $(whoami) | `cat`"))
}

func TestSanitizePolicyJSONEscapesControlCharacters(t *testing.T) {
	s := New().Policy(PolicyJSON)

	assert.Equal(t, "line1\\nline2\\ttab\\rreturn", s.Sanitize("line1\nline2\ttab\rreturn"))
	assert.Equal(t, "text\\u0001\\u001f", s.Sanitize("text\x01\x1f"))
	assert.Equal(t, "back\\bspace form\\ffeed", s.Sanitize("back\bspace form\ffeed"))
}

func TestSanitizeCustomRuleTakesPrecedenceInOrderAdded(t *testing.T) {
	s := New().
		Rule(FilterControl, TransformStrip).
		Rule(FilterNonPrintable, TransformHexEncode)

	assert.Equal(t, "ab", s.Sanitize("a\x01b"))
}

func TestSerializerRawWriteStringSanitizesWithoutQuoting(t *testing.T) {
	san := New().Policy(PolicyTxt)
	se := NewSerializer("raw", san)

	var buf []byte
	se.WriteString(&buf, "test\x00data")
	assert.Equal(t, "test<00>data", string(buf))

	buf = nil
	se.WriteNil(&buf)
	assert.Equal(t, "nil", string(buf))

	assert.False(t, se.NeedsQuotes("any string"))
}

func TestSerializerTxtQuotesOnlyWhenNeeded(t *testing.T) {
	san := New().Policy(PolicyTxt)
	se := NewSerializer("txt", san)

	var buf []byte
	se.WriteString(&buf, "hello world")
	assert.Equal(t, `"hello world"`, string(buf))

	buf = nil
	se.WriteString(&buf, "single")
	assert.Equal(t, "single", string(buf))

	buf = nil
	se.WriteNil(&buf)
	assert.Equal(t, "null", string(buf))

	assert.True(t, se.NeedsQuotes(""))
	assert.True(t, se.NeedsQuotes("has space"))
	assert.False(t, se.NeedsQuotes("nospace"))
}

func TestSerializerJSONAlwaysEscapesAndQuotes(t *testing.T) {
	san := New().Policy(PolicyJSON)
	se := NewSerializer("json", san)

	var buf []byte
	se.WriteString(&buf, "line1\nline2\t\"quoted\"")
	assert.Equal(t, `"line1\nline2\t\"quoted\""`, string(buf))

	buf = nil
	se.WriteString(&buf, "null\x00byte")
	assert.Equal(t, "\"null\\u0000byte\"", string(buf))

	assert.True(t, se.NeedsQuotes("anything"))
}

func TestSerializerWriteComplexDiffersByFormat(t *testing.T) {
	san := New().Policy(PolicyTxt)

	rawSe := NewSerializer("raw", san)
	var buf []byte
	rawSe.WriteComplex(&buf, map[string]int{"a": 1})
	assert.Contains(t, string(buf), "map[")

	txtSe := NewSerializer("txt", san)
	buf = nil
	txtSe.WriteComplex(&buf, []int{1, 2, 3})
	assert.Contains(t, string(buf), "[1 2 3]")
}

func TestSerializerWriteNumberAndBool(t *testing.T) {
	se := NewSerializer("txt", New())

	var buf []byte
	se.WriteNumber(&buf, "42")
	se.WriteBool(&buf, true)
	assert.Equal(t, "42true", string(buf))
}

func BenchmarkSanitizePolicies(b *testing.B) {
	input := strings.Repeat("normal text\x00\n\t", 100)

	benchmarks := []struct {
		name   string
		policy PolicyPreset
	}{
		{"Raw", PolicyRaw},
		{"Txt", PolicyTxt},
		{"Shell", PolicyShell},
		{"JSON", PolicyJSON},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			s := New().Policy(bm.policy)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = s.Sanitize(input)
			}
		})
	}
}
