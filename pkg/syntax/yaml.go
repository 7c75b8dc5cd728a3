package syntax

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var yamlErrLine = regexp.MustCompile(`^yaml: line (\d+)(?:: column (\d+))?: (.*)$`)

// checkYAML decodes every document in the stream and reports the first
// error. Later documents are not checked once one fails.
func checkYAML(src []byte) []Diagnostic {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return []Diagnostic{yamlDiagnostic(err)}
		}
	}
}

func yamlDiagnostic(err error) Diagnostic {
	msg := err.Error()
	m := yamlErrLine.FindStringSubmatch(msg)
	if m == nil {
		return Diagnostic{Line: 1, Column: 1, Message: msg}
	}

	line, _ := strconv.Atoi(m[1])
	col := 1
	if m[2] != "" {
		col, _ = strconv.Atoi(m[2])
	}
	return Diagnostic{Line: line, Column: col, Message: m[3]}
}
