package syntax

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// checkJSON reports the first JSON syntax error or trailing data after the
// top-level value. encoding/json stops at the first error, so at most one
// diagnostic is produced.
func checkJSON(src []byte) []Diagnostic {
	if len(bytes.TrimSpace(src)) == 0 {
		return []Diagnostic{{Line: 1, Column: 1, Message: "empty document"}}
	}

	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return []Diagnostic{jsonDiagnostic(src, err)}
	}

	rest := bytes.TrimLeft(src[dec.InputOffset():], " \t\r\n")
	if len(rest) > 0 {
		line, col := position(src, len(src)-len(rest))
		return []Diagnostic{{Line: line, Column: col, Message: "unexpected data after top-level value"}}
	}
	return nil
}

func jsonDiagnostic(src []byte, err error) Diagnostic {
	var syn *json.SyntaxError
	switch {
	case errors.As(err, &syn):
		offset := int(syn.Offset) - 1
		if offset < 0 {
			offset = 0
		}
		line, col := position(src, offset)
		return Diagnostic{Line: line, Column: col, Message: syn.Error()}
	case errors.Is(err, io.ErrUnexpectedEOF):
		line, col := position(src, len(src))
		return Diagnostic{Line: line, Column: col, Message: "unexpected end of JSON input"}
	default:
		return Diagnostic{Line: 1, Column: 1, Message: strings.TrimPrefix(err.Error(), "json: ")}
	}
}
