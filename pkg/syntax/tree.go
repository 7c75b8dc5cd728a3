package syntax

import (
	"context"
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/widgetspec/pkg/parser"
)

// checkTree parses with tree-sitter and reports every ERROR and MISSING node.
// Subtrees without errors are skipped.
func (c *Checker) checkTree(ctx context.Context, src []byte, lang parser.Language) ([]Diagnostic, error) {
	tree, err := c.parsers.Parse(ctx, src, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", lang, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var diags []Diagnostic
	collectErrors(root, src, &diags, c.opts.MaxDiagnostics)
	if len(diags) == 0 {
		// HasError with no locatable node; report at the root.
		diags = append(diags, Diagnostic{Line: 1, Column: 1, Message: "syntax error"})
	}
	return diags, nil
}

func collectErrors(node *ts.Node, src []byte, diags *[]Diagnostic, limit int) {
	if node == nil || len(*diags) >= limit {
		return
	}

	switch {
	case node.IsMissing():
		*diags = append(*diags, nodeDiagnostic(node, src, fmt.Sprintf("missing %s", node.Kind())))
		return
	case node.IsError():
		*diags = append(*diags, nodeDiagnostic(node, src, unexpectedMessage(node, src)))
		return
	case !node.HasError():
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		collectErrors(node.Child(i), src, diags, limit)
	}
}

func nodeDiagnostic(node *ts.Node, src []byte, msg string) Diagnostic {
	pos := node.StartPosition()
	// tree-sitter columns are byte offsets within the row.
	line := int(pos.Row) + 1
	col := int(pos.Column) + 1
	start := int(node.StartByte())
	if lineStart := start - int(pos.Column); lineStart >= 0 && start <= len(src) {
		col = len([]rune(string(src[lineStart:start]))) + 1
	}
	return Diagnostic{Line: line, Column: col, Message: msg}
}

func unexpectedMessage(node *ts.Node, src []byte) string {
	text := []rune(node.Utf8Text(src))
	if len(text) > 20 {
		text = append(text[:20], '…')
	}
	if len(text) == 0 {
		return "syntax error"
	}
	return fmt.Sprintf("unexpected %q", string(text))
}
