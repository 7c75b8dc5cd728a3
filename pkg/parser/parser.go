// Package parser pools tree-sitter parsers for the JavaScript, TypeScript
// and TSX grammars used by the syntax checker widgets.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/widgetspec/pkg/util"
)

// ErrClosed is returned by Parse after Close.
var ErrClosed = errors.New("parser manager is closed")

// Manager owns one lazily created parser pool per grammar.
//
// Callers own the returned trees and must Close them. The manager itself
// must be closed to free the parsers.
//
// Example:
//
//	manager := parser.NewManager(logger, 0)
//	defer manager.Close()
//
//	tree, err := manager.Parse(ctx, []byte("const x = 1;"), parser.LanguageJavaScript)
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type Manager struct {
	mu       sync.RWMutex
	pools    map[Language]*grammarPool
	poolSize int
	closed   bool
	logger   *slog.Logger

	parses atomic.Int64
}

// NewManager creates a manager. poolSize caps parsers per grammar; zero
// picks util.GetOptimalPoolSize.
func NewManager(logger *slog.Logger, poolSize int) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:    make(map[Language]*grammarPool),
		poolSize: util.GetOptimalPoolSizeWithOverride(poolSize),
		logger:   logger,
	}
}

// Parse parses source with the given grammar. The tree is returned even when
// it contains ERROR or MISSING nodes. Parse blocks while every parser of the
// grammar is busy, until one is released or ctx ends.
func (m *Manager) Parse(ctx context.Context, source []byte, lang Language) (*ts.Tree, error) {
	if _, ok := lang.grammar(); !ok {
		return nil, fmt.Errorf("cannot parse language %s", lang)
	}

	pool, err := m.pool(lang)
	if err != nil {
		return nil, err
	}
	m.parses.Add(1)

	p, err := pool.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s parser: %w", lang, err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("%s parser returned no tree", lang)
	}
	return tree, nil
}

// ParseFile detects the grammar from the file extension.
func (m *Manager) ParseFile(ctx context.Context, source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(ctx, source, lang)
}

func (m *Manager) pool(lang Language) (*grammarPool, error) {
	m.mu.RLock()
	pool, ok := m.pools[lang]
	closed := m.closed
	m.mu.RUnlock()

	if closed {
		return nil, ErrClosed
	}
	if ok {
		return pool, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if pool, ok = m.pools[lang]; ok {
		return pool, nil
	}

	pool = newGrammarPool(lang, m.poolSize, m.logger)
	m.pools[lang] = pool
	m.logger.Debug("created parser pool", "language", lang.String(), "max_size", m.poolSize)
	return pool, nil
}

// Close releases every pooled parser. Trees already returned stay valid.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	closed := 0
	for _, pool := range m.pools {
		closed += pool.close()
	}
	m.logger.Debug("closed parser manager", "parsers_closed", closed, "parses", m.parses.Load())
	m.pools = nil
	return nil
}

// Stats reports parser usage.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{ParsesCalled: int(m.parses.Load())}
	for _, pool := range m.pools {
		s.ParsersCreated += pool.createdCount()
	}
	return s
}
