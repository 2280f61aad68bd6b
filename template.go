// FILE: template.go
package log

import (
	"fmt"
	"strconv"
)

// placeholderSpec is one parsed "{...}" placeholder.
type placeholderSpec struct {
	index        int
	hasIndex     bool
	width        int
	hasWidth     bool
	precision    int
	hasPrecision bool
	typeHint     byte // 'd', 'x', 's', 'f', or 0 for "default"
}

// renderTemplate scans template for positional placeholders and calls
// renderArg once per placeholder, appending the result to out. argc bounds
// the auto-incrementing index used by bare "{}" placeholders. Malformed or
// unrecognized placeholders are copied through verbatim, braces included -
// the grammar never panics on bad input.
func renderTemplate(out []byte, template string, argc int, renderArg func(out []byte, idx int, spec placeholderSpec) []byte) []byte {
	autoIdx := 0
	i := 0
	for i < len(template) {
		c := template[i]

		if c == '{' {
			if i+1 < len(template) && template[i+1] == '{' {
				out = append(out, '{')
				i += 2
				continue
			}
			end := i + 1
			for end < len(template) && template[end] != '}' {
				end++
			}
			if end >= len(template) {
				// Unterminated placeholder: emit verbatim and stop.
				out = append(out, template[i:]...)
				return out
			}
			spec, ok := parsePlaceholder(template[i+1 : end])
			if !ok {
				out = append(out, template[i:end+1]...)
				i = end + 1
				continue
			}
			idx := autoIdx
			if spec.hasIndex {
				idx = spec.index
			} else {
				autoIdx++
			}
			if idx < 0 || idx >= argc {
				out = append(out, template[i:end+1]...)
			} else {
				out = renderArg(out, idx, spec)
			}
			i = end + 1
			continue
		}

		if c == '}' {
			if i+1 < len(template) && template[i+1] == '}' {
				out = append(out, '}')
				i += 2
				continue
			}
			out = append(out, '}')
			i++
			continue
		}

		out = append(out, c)
		i++
	}
	return out
}

// parsePlaceholder parses the inside of a "{...}" (braces excluded):
// [index][:[width][.precision][type]]
func parsePlaceholder(body string) (placeholderSpec, bool) {
	var spec placeholderSpec
	if body == "" {
		return spec, true
	}

	idxPart, fmtPart, hasColon := cutOnce(body, ':')
	if idxPart != "" {
		n, err := strconv.Atoi(idxPart)
		if err != nil {
			return spec, false
		}
		spec.index, spec.hasIndex = n, true
	}
	if !hasColon {
		return spec, true
	}

	rest := fmtPart
	if rest == "" {
		return spec, true
	}

	// Trailing type hint, if any.
	last := rest[len(rest)-1]
	switch last {
	case 'd', 'x', 's', 'f':
		spec.typeHint = last
		rest = rest[:len(rest)-1]
	}

	widthPart, precPart, hasDot := cutOnce(rest, '.')
	if widthPart != "" {
		n, err := strconv.Atoi(widthPart)
		if err != nil {
			return spec, false
		}
		spec.width, spec.hasWidth = n, true
	}
	if hasDot {
		n, err := strconv.Atoi(precPart)
		if err != nil {
			return spec, false
		}
		spec.precision, spec.hasPrecision = n, true
	}
	return spec, true
}

func cutOnce(s string, sep byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// appendValue renders v using the default conversion for its dynamic type
// and no placeholder decoration; used by the zero-width, zero-precision,
// untyped "{}" / "{N}" case.
func appendValue(out []byte, v any) []byte {
	return appendValueSpec(out, v, placeholderSpec{})
}

// appendValueSpec renders v using the default conversion for its dynamic
// type, then applies the placeholder's width/precision/type hint if
// present.
func appendValueSpec(out []byte, v any, spec placeholderSpec) []byte {
	rendered := renderDefault(v, spec)
	if spec.hasWidth && len(rendered) < spec.width {
		pad := spec.width - len(rendered)
		for p := 0; p < pad; p++ {
			out = append(out, ' ')
		}
	}
	return append(out, rendered...)
}

func renderDefault(v any, spec placeholderSpec) string {
	switch spec.typeHint {
	case 'x':
		if n, ok := toInt64(v); ok {
			return strconv.FormatInt(n, 16)
		}
	case 'd':
		if n, ok := toInt64(v); ok {
			return strconv.FormatInt(n, 10)
		}
	case 'f':
		if f, ok := toFloat64(v); ok {
			prec := 6
			if spec.hasPrecision {
				prec = spec.precision
			}
			return strconv.FormatFloat(f, 'f', prec, 64)
		}
	case 's':
		return fmt.Sprint(v)
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	case nil:
		return "<nil>"
	default:
		if n, ok := toInt64(v); ok {
			return strconv.FormatInt(n, 10)
		}
		if f, ok := toFloat64(v); ok {
			prec := -1
			if spec.hasPrecision {
				prec = spec.precision
			}
			return strconv.FormatFloat(f, 'f', prec, 64)
		}
		return fmt.Sprintf("%+v", v)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
