package compat

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/N3ro47/lockfree-log"
)

// parseFormat attempts to extract structured key/value fields from a
// printf-style format string, returning a positional template (using {}
// placeholders) and the corresponding values, in the shape this package's
// Logger expects.
func parseFormat(format string, args []any) (string, []any) {
	keyValuePattern := regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)

	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	if len(matches) == 0 || len(matches) > len(args) {
		// Fallback: render the whole thing into a single message slot.
		return "{}", []any{fmt.Sprintf(format, args...)}
	}

	var tmpl strings.Builder
	values := make([]any, 0, len(matches))
	lastEnd := 0
	argIndex := 0

	for _, match := range matches {
		if match[0] > lastEnd {
			tmpl.WriteString(format[lastEnd:match[0]])
		}

		keyStart, keyEnd := match[2], match[3]
		key := format[keyStart:keyEnd]

		tmpl.WriteString(key)
		tmpl.WriteString("={}")
		if argIndex < len(args) {
			values = append(values, args[argIndex])
			argIndex++
		}

		lastEnd = match[1]
	}

	if lastEnd < len(format) {
		remainingFormat := format[lastEnd:]
		remainingArgs := args[argIndex:]
		if len(remainingArgs) > 0 {
			tmpl.WriteString(fmt.Sprintf(remainingFormat, remainingArgs...))
		} else {
			tmpl.WriteString(remainingFormat)
		}
	}

	return tmpl.String(), values
}

// StructuredGnetAdapter provides enhanced structured logging for gnet
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(logger *log.Logger, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(logger, opts...),
		extractFields: true,
	}
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	if a.extractFields {
		tmpl, values := parseFormat(format, args)
		a.logger.Debug("gnet: "+tmpl, values...)
	} else {
		a.GnetAdapter.Debugf(format, args...)
	}
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	if a.extractFields {
		tmpl, values := parseFormat(format, args)
		a.logger.Info("gnet: "+tmpl, values...)
	} else {
		a.GnetAdapter.Infof(format, args...)
	}
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	if a.extractFields {
		tmpl, values := parseFormat(format, args)
		a.logger.Warn("gnet: "+tmpl, values...)
	} else {
		a.GnetAdapter.Warnf(format, args...)
	}
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	if a.extractFields {
		tmpl, values := parseFormat(format, args)
		a.logger.Error("gnet: "+tmpl, values...)
	} else {
		a.GnetAdapter.Errorf(format, args...)
	}
}
