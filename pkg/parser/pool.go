package parser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// grammarPool hands out parsers for one grammar. Parsers are created lazily
// up to maxSize; after that callers wait for a release or for ctx to end.
type grammarPool struct {
	lang    Language
	idle    chan *ts.Parser
	maxSize int
	logger  *slog.Logger

	mu      sync.Mutex
	created int
	closed  bool
}

func newGrammarPool(lang Language, maxSize int, logger *slog.Logger) *grammarPool {
	return &grammarPool{
		lang:    lang,
		idle:    make(chan *ts.Parser, maxSize),
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *grammarPool) acquire(ctx context.Context) (*ts.Parser, error) {
	select {
	case parser, ok := <-p.idle:
		return idleParser(parser, ok)
	default:
	}

	if parser, created, err := p.tryCreate(); created || err != nil {
		return parser, err
	}

	select {
	case parser, ok := <-p.idle:
		return idleParser(parser, ok)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func idleParser(parser *ts.Parser, ok bool) (*ts.Parser, error) {
	if !ok {
		return nil, ErrClosed
	}
	return parser, nil
}

// tryCreate builds a new parser unless the pool is at capacity, in which
// case created is false and err is nil.
func (p *grammarPool) tryCreate() (parser *ts.Parser, created bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, false, ErrClosed
	}
	if p.created >= p.maxSize {
		return nil, false, nil
	}

	ptr, known := p.lang.grammar()
	if !known {
		return nil, false, fmt.Errorf("no grammar for %s", p.lang)
	}

	parser = ts.NewParser()
	if parser == nil {
		return nil, false, fmt.Errorf("failed to create %s parser", p.lang)
	}
	if err := parser.SetLanguage(ts.NewLanguage(ptr)); err != nil {
		parser.Close()
		return nil, false, fmt.Errorf("failed to set language %s: %w", p.lang, err)
	}

	p.created++
	p.logger.Debug("created parser", "language", p.lang.String(), "pool_size", p.created)
	return parser, true, nil
}

// release returns a parser to the pool, or closes it once the pool is closed.
func (p *grammarPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		parser.Close()
		return
	}
	select {
	case p.idle <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "language", p.lang.String())
	}
}

func (p *grammarPool) close() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	close(p.idle)
	n := 0
	for parser := range p.idle {
		parser.Close()
		n++
	}
	return n
}

func (p *grammarPool) createdCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
