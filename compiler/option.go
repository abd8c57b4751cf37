package compiler

import (
	"github.com/viant/procgraph/aspect"
	"go.uber.org/zap"
)

type Option func(c *Compiler)

// WithResolver sets the aspect resolver
func WithResolver(resolver aspect.Resolver) Option {
	return func(c *Compiler) {
		c.resolver = resolver
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithScratchSize sets the initial descriptor scratch buffer size
func WithScratchSize(size int) Option {
	return func(c *Compiler) {
		c.scratchSize = size
	}
}

// WithMaxDescriptorSize sets the largest descriptor the compiler encodes
func WithMaxDescriptorSize(size int) Option {
	return func(c *Compiler) {
		c.maxDescriptorSize = size
	}
}
