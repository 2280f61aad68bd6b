// FILE: jsonline.go
package log

import "github.com/sugawarayuuta/sonnet"

// jsonRecord is the wire shape for format="json" output, marshaled with
// sonnet instead of the standard library encoder.
type jsonRecord struct {
	Level   string `json:"level"`
	GoID    int64  `json:"goid"`
	Message string `json:"message"`
}

func renderJSONLine(buf []byte, level string, goid int64, message string) []byte {
	encoded, err := sonnet.Marshal(jsonRecord{Level: level, GoID: goid, Message: message})
	if err != nil {
		internalLog("json render failed: %v\n", err)
		return append(buf, message...)
	}
	return append(buf, encoded...)
}
