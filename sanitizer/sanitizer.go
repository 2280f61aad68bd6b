// Package sanitizer scrubs arbitrary text before it reaches a sink,
// combining rune-level filters with per-filter transforms so a caller can
// compose custom policies or pick one of the built-in presets.
package sanitizer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Filter bits select which runes a rule matches.
const (
	FilterNonPrintable uint64 = 1 << iota // runes strconv.IsPrint rejects
	FilterControl                         // unicode.IsControl
	FilterWhitespace                      // unicode.IsSpace
	FilterShellSpecial                    // `$;|&><()#` and backtick
)

// Transform bits select what happens to a rune a filter matched.
const (
	TransformStrip      uint64 = 1 << iota // drop the rune entirely
	TransformHexEncode                     // emit "<hexbytes>"
	TransformJSONEscape                    // emit a JSON backslash escape
)

// PolicyPreset names a ready-made rule set for a known output context.
type PolicyPreset string

const (
	PolicyRaw   PolicyPreset = "raw"   // no rules; passthrough
	PolicyJSON  PolicyPreset = "json"  // escape control characters for JSON
	PolicyTxt   PolicyPreset = "txt"   // hex-encode non-printable runes
	PolicyShell PolicyPreset = "shell" // strip shell metacharacters and whitespace
)

type rule struct {
	filter    uint64
	transform uint64
}

var presetRules = map[PolicyPreset][]rule{
	PolicyRaw:   {},
	PolicyTxt:   {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyJSON:  {{filter: FilterControl, transform: TransformJSONEscape}},
	PolicyShell: {{filter: FilterShellSpecial | FilterWhitespace, transform: TransformStrip}},
}

func isShellSpecial(r rune) bool {
	switch r {
	case '`', '$', ';', '|', '&', '>', '<', '(', ')', '#':
		return true
	default:
		return false
	}
}

// matchesFilter reports whether r trips any bit set in mask. Bits are
// checked individually rather than via a precomputed table: masks combine
// at most a handful of flags, so the branch cost is negligible next to the
// rune iteration itself.
func matchesFilter(r rune, mask uint64) bool {
	if mask&FilterNonPrintable != 0 && !strconv.IsPrint(r) {
		return true
	}
	if mask&FilterControl != 0 && unicode.IsControl(r) {
		return true
	}
	if mask&FilterWhitespace != 0 && unicode.IsSpace(r) {
		return true
	}
	if mask&FilterShellSpecial != 0 && isShellSpecial(r) {
		return true
	}
	return false
}

// Sanitizer is a chainable, ordered list of rules applied rune-by-rune.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New returns a Sanitizer with no rules; Sanitize is a no-op until Rule or
// Policy is called.
func New() *Sanitizer {
	return &Sanitizer{buf: make([]byte, 0, 256)}
}

// Rule appends a custom filter/transform pair. Rules are tried in the order
// added; the first one whose filter matches a rune wins.
func (s *Sanitizer) Rule(filter, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends a built-in preset's rules, in addition to any already set.
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := presetRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize runs every configured rule over data and returns the result.
// Runes matching no rule pass through unchanged.
func (s *Sanitizer) Sanitize(data string) string {
	s.buf = s.buf[:0]

	for _, r := range data {
		applied := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				transformRune(&s.buf, r, rl.transform)
				applied = true
				break
			}
		}
		if !applied {
			s.buf = utf8.AppendRune(s.buf, r)
		}
	}

	return string(s.buf)
}

func transformRune(buf *[]byte, r rune, transform uint64) {
	switch {
	case transform&TransformStrip != 0:
		return

	case transform&TransformHexEncode != 0:
		var encoded [utf8.UTFMax]byte
		n := utf8.EncodeRune(encoded[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(encoded[:n])...)
		*buf = append(*buf, '>')

	case transform&TransformJSONEscape != 0:
		appendJSONEscapedRune(buf, r)
	}
}

func appendJSONEscapedRune(buf *[]byte, r rune) {
	switch r {
	case '\n':
		*buf = append(*buf, '\\', 'n')
	case '\r':
		*buf = append(*buf, '\\', 'r')
	case '\t':
		*buf = append(*buf, '\\', 't')
	case '\b':
		*buf = append(*buf, '\\', 'b')
	case '\f':
		*buf = append(*buf, '\\', 'f')
	case '"':
		*buf = append(*buf, '\\', '"')
	case '\\':
		*buf = append(*buf, '\\', '\\')
	default:
		if r < 0x20 || r == 0x7f {
			*buf = append(*buf, fmt.Sprintf("\\u%04x", r)...)
		} else {
			*buf = utf8.AppendRune(*buf, r)
		}
	}
}

// Serializer renders already-sanitized values into one of three wire
// shapes: "raw" (debug dump, unquoted), "txt" (quoted only when the value
// needs it), or "json" (always quoted, always escaped).
type Serializer struct {
	format    string
	sanitizer *Sanitizer
}

// NewSerializer binds a format name to the sanitizer that should scrub
// string values before they're written.
func NewSerializer(format string, san *Sanitizer) *Serializer {
	return &Serializer{format: format, sanitizer: san}
}

// WriteString appends s to buf, quoting/escaping as the bound format
// requires. For raw and txt, s first goes through the bound sanitizer;
// json escapes s itself and does not consult the sanitizer.
func (se *Serializer) WriteString(buf *[]byte, s string) {
	switch se.format {
	case "raw":
		*buf = append(*buf, se.sanitizer.Sanitize(s)...)

	case "txt":
		se.writeTxtString(buf, s)

	case "json":
		se.writeJSONString(buf, s)
	}
}

func (se *Serializer) writeTxtString(buf *[]byte, s string) {
	sanitized := se.sanitizer.Sanitize(s)
	if !se.NeedsQuotes(sanitized) {
		*buf = append(*buf, sanitized...)
		return
	}
	*buf = append(*buf, '"')
	for i := 0; i < len(sanitized); i++ {
		if sanitized[i] == '"' || sanitized[i] == '\\' {
			*buf = append(*buf, '\\')
		}
		*buf = append(*buf, sanitized[i])
	}
	*buf = append(*buf, '"')
}

func (se *Serializer) writeJSONString(buf *[]byte, s string) {
	*buf = append(*buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= ' ' && c != '"' && c != '\\' && c < 0x7f {
			start := i
			for i < len(s) && s[i] >= ' ' && s[i] != '"' && s[i] != '\\' && s[i] < 0x7f {
				i++
			}
			*buf = append(*buf, s[start:i]...)
			continue
		}
		switch c {
		case '\\', '"':
			*buf = append(*buf, '\\', c)
		case '\n':
			*buf = append(*buf, '\\', 'n')
		case '\r':
			*buf = append(*buf, '\\', 'r')
		case '\t':
			*buf = append(*buf, '\\', 't')
		case '\b':
			*buf = append(*buf, '\\', 'b')
		case '\f':
			*buf = append(*buf, '\\', 'f')
		default:
			*buf = append(*buf, fmt.Sprintf("\\u%04x", c)...)
		}
		i++
	}
	*buf = append(*buf, '"')
}

// WriteNumber appends a pre-formatted numeric literal verbatim.
func (se *Serializer) WriteNumber(buf *[]byte, n string) {
	*buf = append(*buf, n...)
}

// WriteBool appends "true" or "false".
func (se *Serializer) WriteBool(buf *[]byte, b bool) {
	*buf = strconv.AppendBool(*buf, b)
}

// WriteNil appends the format's null spelling ("nil" for raw, "null"
// otherwise).
func (se *Serializer) WriteNil(buf *[]byte) {
	if se.format == "raw" {
		*buf = append(*buf, "nil"...)
		return
	}
	*buf = append(*buf, "null"...)
}

// WriteComplex renders a value with no dedicated case in convertValue: a
// struct, slice, map, or other composite. raw gets a spew dump for
// debugging; every other format falls back to "%+v" run through
// WriteString.
func (se *Serializer) WriteComplex(buf *[]byte, v any) {
	if se.format != "raw" {
		se.WriteString(buf, fmt.Sprintf("%+v", v))
		return
	}
	var b bytes.Buffer
	dumper := &spew.ConfigState{
		Indent:                  " ",
		MaxDepth:                10,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(&b, v)
	*buf = append(*buf, bytes.TrimSpace(b.Bytes())...)
}

// NeedsQuotes reports whether s must be wrapped in quotes for the bound
// format: always true for json, true for txt when s is empty, contains
// whitespace, a shell-ish metacharacter, or a non-printable rune, and
// always false for raw.
func (se *Serializer) NeedsQuotes(s string) bool {
	switch se.format {
	case "json":
		return true
	case "txt":
		return txtNeedsQuotes(s)
	default:
		return false
	}
}

func txtNeedsQuotes(s string) bool {
	if len(s) == 0 {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case '"', '\'', '\\', '$', '`', '!', '&', '|', ';',
			'(', ')', '<', '>', '*', '?', '[', ']', '{', '}',
			'~', '#', '%', '=', '\n', '\r', '\t':
			return true
		}
		if !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}
