// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pptrec

import (
	"log/slog"

	"github.com/slidelab/pptrec/record"
)

// Option configures document parsing.
type Option func(*options)

type options struct {
	recOpts []record.ParseOption
}

// WithLogger sets an optional logger for lenient-mode parse diagnostics.
// If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.recOpts = append(o.recOpts, record.WithLogger(logger))
	}
}

// WithStrict makes structural parse errors fatal instead of degrading
// failed subtrees to opaque records.
func WithStrict() Option {
	return func(o *options) {
		o.recOpts = append(o.recOpts, record.WithStrict())
	}
}

// WithMaxDepth overrides the container nesting bound.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.recOpts = append(o.recOpts, record.WithMaxDepth(depth))
	}
}

// WithContainerTypes registers additional container record types.
func WithContainerTypes(types ...uint16) Option {
	return func(o *options) {
		o.recOpts = append(o.recOpts, record.WithContainerTypes(types...))
	}
}

func parseOptions(opts []Option) []record.ParseOption {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o.recOpts
}
