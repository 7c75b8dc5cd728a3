package syntax

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	c, err := NewChecker(Options{
		PoolSize:  2,
		CacheSize: 8,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCheck_ValidSources(t *testing.T) {
	c := newTestChecker(t)

	sources := map[Language]string{
		LanguageJSON:       `{"name": "widget", "tags": [1, 2.5, true, null]}`,
		LanguageYAML:       "name: widget\ntags:\n  - a\n  - b\n---\nsecond: doc\n",
		LanguageJavaScript: "export function add(a, b) { return a + b; }\n",
		LanguageTypeScript: "type Pair<T> = [T, T];\nconst p: Pair<number> = [1, 2];\n",
		LanguageTSX:        "export const Hi = ({ name }: { name: string }) => <b>{name}</b>;\n",
	}
	for lang, src := range sources {
		t.Run(string(lang), func(t *testing.T) {
			res, err := c.Check(context.Background(), []byte(src), lang)
			require.NoError(t, err)
			assert.True(t, res.Valid, "diagnostics: %v", res.Diagnostics)
			assert.Equal(t, lang, res.Language)
			assert.NotNil(t, res.Diagnostics)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestCheck_JSONErrors(t *testing.T) {
	c := newTestChecker(t)

	tests := []struct {
		name      string
		src       string
		line, col int
		contains  string
	}{
		{"bad value", "{\n  \"a\": ,\n}", 2, 8, "invalid character"},
		{"truncated", "{\"a\": [1, 2", 1, 12, "unexpected end"},
		{"trailing data", "{} {}", 1, 4, "after top-level value"},
		{"empty", "   ", 1, 1, "empty document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Check(context.Background(), []byte(tt.src), LanguageJSON)
			require.NoError(t, err)
			require.False(t, res.Valid)
			require.Len(t, res.Diagnostics, 1)

			d := res.Diagnostics[0]
			assert.Equal(t, tt.line, d.Line, "line")
			assert.Equal(t, tt.col, d.Column, "column")
			assert.Contains(t, d.Message, tt.contains)
		})
	}
}

func TestCheck_YAMLError(t *testing.T) {
	c := newTestChecker(t)

	res, err := c.Check(context.Background(), []byte("a: 1\nb: [1, 2\nc: 3\n"), LanguageYAML)
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Len(t, res.Diagnostics, 1)
	// yaml.v3 places an unclosed flow sequence on line 1 and gives no column.
	assert.Equal(t, 1, res.Diagnostics[0].Line)
	assert.Equal(t, 1, res.Diagnostics[0].Column)
	assert.NotEmpty(t, res.Diagnostics[0].Message)
	assert.NotContains(t, res.Diagnostics[0].Message, "yaml: line")
}

func TestYAMLDiagnostic(t *testing.T) {
	tests := []struct {
		err  string
		want Diagnostic
	}{
		{"yaml: line 4: mapping values are not allowed in this context", Diagnostic{Line: 4, Column: 1, Message: "mapping values are not allowed in this context"}},
		{"yaml: line 2: column 7: found character that cannot start any token", Diagnostic{Line: 2, Column: 7, Message: "found character that cannot start any token"}},
		{"yaml: control characters are not allowed", Diagnostic{Line: 1, Column: 1, Message: "yaml: control characters are not allowed"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, yamlDiagnostic(errors.New(tt.err)), tt.err)
	}
}

func TestCheck_TreeSitterErrors(t *testing.T) {
	c := newTestChecker(t)

	res, err := c.Check(context.Background(), []byte("const a = 1;\nconst b = ;\n"), LanguageJavaScript)
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, 2, res.Diagnostics[0].Line)

	res, err = c.Check(context.Background(), []byte("function f( {\n"), LanguageTypeScript)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Diagnostics)

	// JSX is only legal with the TSX grammar.
	jsx := []byte("const el = <div>hi</div>;\n")
	res, err = c.Check(context.Background(), jsx, LanguageTypeScript)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	res, err = c.Check(context.Background(), jsx, LanguageTSX)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestCheck_MaxDiagnostics(t *testing.T) {
	c, err := NewChecker(Options{PoolSize: 1, MaxDiagnostics: 2, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	defer c.Close()

	src := strings.Repeat("let = ;\n", 10)
	res, err := c.Check(context.Background(), []byte(src), LanguageJavaScript)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.LessOrEqual(t, len(res.Diagnostics), 2)
}

func TestCheck_Cache(t *testing.T) {
	c := newTestChecker(t)
	src := []byte(`{"a": 1}`)

	first, err := c.Check(context.Background(), src, LanguageJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, c.CacheLen())

	second, err := c.Check(context.Background(), src, LanguageJSON)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.CacheLen(), "identical source hits the cache")

	_, err = c.Check(context.Background(), src, LanguageYAML)
	require.NoError(t, err)
	assert.Equal(t, 2, c.CacheLen(), "language is part of the key")
}

func TestCheck_CachedResultIsolated(t *testing.T) {
	c := newTestChecker(t)
	src := []byte(`{`)

	res, err := c.Check(context.Background(), src, LanguageJSON)
	require.NoError(t, err)
	res.Diagnostics[0].Message = "mutated"

	again, err := c.Check(context.Background(), src, LanguageJSON)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Diagnostics[0].Message)
}

func TestCheck_Rejections(t *testing.T) {
	c, err := NewChecker(Options{PoolSize: 1, MaxSourceBytes: 4, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Check(context.Background(), []byte("12345"), LanguageJSON)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = c.Check(context.Background(), []byte("x"), Language("cobol"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = c.CheckString(context.Background(), "x", "cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"JSON":       LanguageJSON,
		"yml":        LanguageYAML,
		"js":         LanguageJavaScript,
		"ts":         LanguageTypeScript,
		"tsx":        LanguageTSX,
		"javascript": LanguageJavaScript,
	}
	for in, want := range tests {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestPosition(t *testing.T) {
	src := []byte("ab\nсd\nx")
	line, col := position(src, 0)
	assert.Equal(t, [2]int{1, 1}, [2]int{line, col})

	// "с" is two bytes; the column counts runes.
	line, col = position(src, len("ab\nс"))
	assert.Equal(t, [2]int{2, 2}, [2]int{line, col})

	line, col = position(src, len(src)+10)
	assert.Equal(t, [2]int{3, 2}, [2]int{line, col})
}
