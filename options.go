package strel

import "log/slog"

// DefaultCacheCapacity is the number of patterns each element-type cache keeps.
const DefaultCacheCapacity = 256

// Option configures a Registry during creation.
// Use functional options to customize Registry behavior.
//
// Example:
//
//	// Defaults: 256 cached patterns per element type, GOMAXPROCS workers
//	r := strel.NewRegistry()
//
//	// Small cache, two rasterization workers, own logger
//	r := strel.NewRegistry(
//	    strel.WithCacheCapacity(16),
//	    strel.WithWorkers(2),
//	    strel.WithLogger(logger),
//	)
type Option func(*registryOptions)

// registryOptions holds optional configuration for Registry creation.
type registryOptions struct {
	cacheCapacity      int
	workers            int
	logger             *slog.Logger
	circleOptimization bool
}

// defaultOptions returns the default registry options.
func defaultOptions() registryOptions {
	return registryOptions{
		cacheCapacity: DefaultCacheCapacity,
	}
}

// WithCacheCapacity sets how many patterns each element-type cache keeps.
// The least recently used pattern is dropped when the cache is full.
// Zero or a negative value means unlimited.
func WithCacheCapacity(n int) Option {
	return func(o *registryOptions) {
		o.cacheCapacity = n
	}
}

// WithWorkers sets the number of goroutines rasterizing rotated ellipses.
// Zero or a negative value means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *registryOptions) {
		o.workers = n
	}
}

// WithLogger sets the logger of the registry, overriding the package logger
// configured by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *registryOptions) {
		o.logger = l
	}
}

// WithCircleOptimization makes "circle d" with an integer diameter above 16
// use the Minkowski-sum approximation of NewShapePattern instead of exact
// rasterization. The approximated disk is not exactly round.
func WithCircleOptimization(enabled bool) Option {
	return func(o *registryOptions) {
		o.circleOptimization = enabled
	}
}
