package parser

import (
	"path/filepath"
	"strings"
	"unsafe"

	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language is a tree-sitter grammar the checker can load.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	// LanguageTSX is TypeScript with JSX enabled; it has its own grammar.
	LanguageTSX     Language = "tsx"
	LanguageUnknown Language = ""
)

func (l Language) String() string {
	if l == LanguageUnknown {
		return "unknown"
	}
	return string(l)
}

// DetectLanguage maps a file extension onto a grammar.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".tsx":
		return LanguageTSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// ParseLanguage accepts grammar names and their common short forms.
func ParseLanguage(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "javascript", "js", "jsx", "mjs":
		return LanguageJavaScript
	case "typescript", "ts":
		return LanguageTypeScript
	case "tsx":
		return LanguageTSX
	default:
		return LanguageUnknown
	}
}

// SupportedLanguages lists every grammar, in a stable order.
func SupportedLanguages() []Language {
	return []Language{LanguageJavaScript, LanguageTypeScript, LanguageTSX}
}

func (l Language) grammar() (unsafe.Pointer, bool) {
	switch l {
	case LanguageJavaScript:
		return ts_javascript.Language(), true
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), true
	case LanguageTSX:
		return ts_typescript.LanguageTSX(), true
	default:
		return nil, false
	}
}
