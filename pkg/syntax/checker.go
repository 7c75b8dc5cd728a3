// Package syntax implements the JSON, YAML and JavaScript/TypeScript syntax
// checker widgets.
//
// A Checker validates a source buffer and reports every problem it can
// locate as a Diagnostic with a 1-based line and column. Results are cached
// by language and content hash, so re-checking an unchanged buffer is free.
package syntax

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/widgetspec/pkg/parser"
)

// Language names a checkable source format.
type Language string

const (
	LanguageJSON       Language = "json"
	LanguageYAML       Language = "yaml"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

// Languages lists every supported language.
func Languages() []Language {
	return []Language{LanguageJSON, LanguageYAML, LanguageJavaScript, LanguageTypeScript, LanguageTSX}
}

// ParseLanguage resolves a language name or common alias.
func ParseLanguage(name string) (Language, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "json":
		return LanguageJSON, nil
	case "yaml", "yml":
		return LanguageYAML, nil
	default:
		if lang := parser.ParseLanguage(n); lang != parser.LanguageUnknown {
			return Language(lang), nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
}

var (
	// ErrUnsupportedLanguage is returned for languages the checker does not know.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrTooLarge is returned for sources over Options.MaxSourceBytes.
	ErrTooLarge = errors.New("source too large")
)

// Diagnostic is one located syntax problem.
type Diagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Result is the outcome of checking one source.
type Result struct {
	Language    Language     `json:"language"`
	Valid       bool         `json:"valid"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Options configures a Checker. Zero values pick defaults.
type Options struct {
	// CacheSize is the number of results kept in the LRU (default 256).
	CacheSize int
	// PoolSize caps tree-sitter parsers per grammar (default util.GetOptimalPoolSize).
	PoolSize int
	// MaxSourceBytes rejects larger sources (default 1 MiB).
	MaxSourceBytes int
	// MaxDiagnostics truncates the report (default 50).
	MaxDiagnostics int
	Logger         *slog.Logger
}

const (
	defaultCacheSize      = 256
	defaultMaxSourceBytes = 1 << 20
	defaultMaxDiagnostics = 50
)

type cacheKey struct {
	lang Language
	sum  [sha256.Size]byte
}

// Checker validates sources. It is safe for concurrent use and must be
// closed to release its parsers.
type Checker struct {
	parsers *parser.Manager
	cache   *lru.Cache[cacheKey, Result]
	opts    Options
	logger  *slog.Logger
}

// NewChecker creates a Checker.
func NewChecker(opts Options) (*Checker, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.MaxSourceBytes <= 0 {
		opts.MaxSourceBytes = defaultMaxSourceBytes
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.New[cacheKey, Result](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	return &Checker{
		parsers: parser.NewManager(logger, opts.PoolSize),
		cache:   cache,
		opts:    opts,
		logger:  logger,
	}, nil
}

// Check validates source as lang. Syntax problems are reported in the
// Result; the error is reserved for unsupported languages, oversized input
// and cancellation.
func (c *Checker) Check(ctx context.Context, source []byte, lang Language) (Result, error) {
	if len(source) > c.opts.MaxSourceBytes {
		return Result{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(source), c.opts.MaxSourceBytes)
	}

	key := cacheKey{lang: lang, sum: sha256.Sum256(source)}
	if res, ok := c.cache.Get(key); ok {
		return cloneResult(res), nil
	}

	var (
		diags []Diagnostic
		err   error
	)
	switch lang {
	case LanguageJSON:
		diags = checkJSON(source)
	case LanguageYAML:
		diags = checkYAML(source)
	case LanguageJavaScript, LanguageTypeScript, LanguageTSX:
		diags, err = c.checkTree(ctx, source, parser.Language(lang))
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if err != nil {
		return Result{}, err
	}

	if len(diags) > c.opts.MaxDiagnostics {
		diags = diags[:c.opts.MaxDiagnostics]
	}
	if diags == nil {
		diags = []Diagnostic{}
	}

	res := Result{Language: lang, Valid: len(diags) == 0, Diagnostics: diags}
	c.cache.Add(key, res)
	c.logger.Debug("checked source", "language", string(lang), "bytes", len(source), "diagnostics", len(diags))
	return cloneResult(res), nil
}

// CheckString is Check for a string source and a language name.
func (c *Checker) CheckString(ctx context.Context, source, lang string) (Result, error) {
	l, err := ParseLanguage(lang)
	if err != nil {
		return Result{}, err
	}
	return c.Check(ctx, []byte(source), l)
}

// CacheLen reports how many results are cached.
func (c *Checker) CacheLen() int { return c.cache.Len() }

// Close releases the parser pools.
func (c *Checker) Close() error {
	c.cache.Purge()
	return c.parsers.Close()
}

func cloneResult(r Result) Result {
	r.Diagnostics = append([]Diagnostic{}, r.Diagnostics...)
	return r
}

// position converts a byte offset into a 1-based line and rune column.
func position(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for _, r := range string(src[:offset]) {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
