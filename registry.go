package strel

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/strel/internal/cache"
	"github.com/gogpu/strel/internal/parallel"
	"github.com/gogpu/strel/pattern"
)

// Registry owns one Parser per element type and the worker pool used to
// rasterize rotated ellipses. Registries are independent of each other.
//
// Registry is safe for concurrent use. Call Close to stop its workers.
type Registry struct {
	opts registryOptions
	pool *parallel.WorkerPool

	mu      sync.Mutex
	parsers map[ElementType]*Parser
}

// NewRegistry creates a registry configured by the given options.
func NewRegistry(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		opts:    o,
		pool:    parallel.NewWorkerPool(o.workers),
		parsers: make(map[ElementType]*Parser),
	}
}

// Parser returns the parser for the element type, creating it on first use.
func (r *Registry) Parser(t ElementType) *Parser {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parsers[t]
	if !ok {
		p = &Parser{
			registry: r,
			elemType: t,
			zScale:   t.MaxValue(),
			integer:  t.IsInteger(),
			cache:    cache.New[string, pattern.Pattern](r.opts.cacheCapacity),
		}
		r.parsers[t] = p
	}
	return p
}

// Parse is a shortcut for r.Parser(t).Parse(spec).
func (r *Registry) Parse(spec string, t ElementType) (pattern.Pattern, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownElementType, t)
	}
	return r.Parser(t).Parse(spec)
}

// Close stops the worker pool. Patterns that need rasterization workers
// cannot be parsed afterwards; everything else keeps working.
func (r *Registry) Close() {
	r.pool.Close()
}

func (r *Registry) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

// Parser turns specifications into patterns for one element type and caches
// the results under the normalized specification text.
//
// Parser is safe for concurrent use.
type Parser struct {
	registry *Registry
	elemType ElementType
	zScale   float64
	integer  bool
	cache    *cache.Cache[string, pattern.Pattern]
}

// ElementType returns the element type the parser scales and rounds z for.
func (p *Parser) ElementType() ElementType {
	return p.elemType
}

// CacheStats contains statistics of a parser's pattern cache.
type CacheStats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}

// CacheStats returns statistics of the parser's pattern cache.
func (p *Parser) CacheStats() CacheStats {
	s := p.cache.Stats()
	return CacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		HitRate:   s.HitRate,
		Evictions: s.Evictions,
	}
}

// Parse returns the pattern described by spec.
//
// The specification is trimmed and lower-cased first; equal normalized
// specifications give equal patterns, possibly the same cached value.
// Malformed input fails with an error matching ErrInvalidSpecification.
func (p *Parser) Parse(spec string) (pattern.Pattern, error) {
	if !p.elemType.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownElementType, p.elemType)
	}
	key := normalize(spec)
	log := p.registry.logger()
	if res, ok := p.cache.Get(key); ok {
		log.Debug("strel: pattern loaded from cache", "spec", key, "type", p.elemType)
		return res, nil
	}
	res, err := p.evaluate(key)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, res)
	log.Debug("strel: pattern stored in cache", "spec", key, "type", p.elemType, "pattern", res)
	return res, nil
}

// normalize trims spec and lower-cases it unless it surely has no upper-case letters.
func normalize(spec string) string {
	s := strings.TrimSpace(spec)
	if isSurelyLowerCase(s) {
		return s
	}
	return cases.Lower(language.Und).String(s)
}

func isSurelyLowerCase(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 0x80 || ('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}
