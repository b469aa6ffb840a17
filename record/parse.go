// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

import (
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds container nesting.  Well-formed documents nest a
// dozen levels at most; anything deeper is treated as malformed.
const DefaultMaxDepth = 64

type parser struct {
	strict     bool
	maxDepth   int
	logger     *slog.Logger
	containers map[uint16]bool
}

// ParseOption configures parsing.
type ParseOption func(*parser)

// WithStrict makes structural errors fatal instead of degrading the
// failed subtree to an opaque record.  Used by round-trip verification.
func WithStrict() ParseOption {
	return func(p *parser) {
		p.strict = true
	}
}

// WithMaxDepth overrides the container nesting bound.
func WithMaxDepth(depth int) ParseOption {
	return func(p *parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithLogger sets an optional logger for lenient-mode parse diagnostics.
// If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(p *parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithContainerTypes registers additional record types to be parsed as
// containers even though their headers lack the container version marker.
func WithContainerTypes(types ...uint16) ParseOption {
	return func(p *parser) {
		for _, t := range types {
			p.containers[t] = true
		}
	}
}

func newParser(opts []ParseOption) *parser {
	p := &parser{
		maxDepth:   DefaultMaxDepth,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		containers: make(map[uint16]bool, len(knownContainers)),
	}
	for t := range knownContainers {
		p.containers[t] = true
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse consumes the whole record stream and returns the top-level record
// list.  In the default lenient mode, subtrees that fail structurally are
// retained as opaque records carrying their raw bytes; with WithStrict
// the first structural error aborts the parse.
func Parse(data []byte, opts ...ParseOption) ([]*Record, error) {
	p := newParser(opts)

	var roots []*Record
	off := 0
	for off < len(data) {
		if len(data)-off < HeaderSize {
			// residual bytes too short for a header
			if p.strict {
				return nil, &TruncatedRecordError{Offset: off, Remaining: len(data) - off}
			}
			p.logger.Warn("keeping trailing bytes as opaque record", "offset", off, "len", len(data)-off)
			roots = append(roots, &Record{verbatim: data[off:]})
			break
		}
		rec, n, err := p.parseRecord(data[off:], off, 0)
		if err != nil {
			if p.strict {
				return nil, err
			}
			rec, n = p.recover(data[off:], off, err)
		}
		roots = append(roots, rec)
		off += n
	}
	return roots, nil
}

// ParseOne decodes a single record from the front of data and returns it
// along with the number of bytes consumed.
func ParseOne(data []byte, opts ...ParseOption) (*Record, int, error) {
	p := newParser(opts)
	return p.parseRecord(data, 0, 0)
}

// recover degrades a failed subtree to an opaque record spanning the
// record's declared bytes (clamped to the input), preserving them
// verbatim so the document still round-trips.
func (p *parser) recover(data []byte, absOff int, cause error) (*Record, int) {
	h, err := ParseHeader(data)
	if err != nil {
		p.logger.Warn("keeping unparseable bytes as opaque record", "offset", absOff, "error", cause)
		return &Record{verbatim: data}, len(data)
	}
	end := HeaderSize + int(h.Length)
	if end > len(data) {
		end = len(data)
	}
	p.logger.Warn("keeping failed subtree as opaque record",
		"offset", absOff, "type", TypeName(h.Type), "error", cause)
	return &Record{Type: h.Type, Options: h.Options, verbatim: data[:end]}, end
}

func (p *parser) isContainer(h Header) bool {
	return h.IsContainer() || p.containers[h.Type]
}

func (p *parser) parseRecord(data []byte, absOff, depth int) (*Record, int, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, 0, &TruncatedRecordError{Offset: absOff, Remaining: len(data)}
	}
	body := data[HeaderSize:]
	if int(h.Length) > len(body) {
		return nil, 0, &TruncatedRecordError{
			Type:      h.Type,
			Offset:    absOff,
			Declared:  h.Length,
			Remaining: len(body),
		}
	}
	body = body[:h.Length]
	consumed := HeaderSize + int(h.Length)

	if !p.isContainer(h) {
		return &Record{Type: h.Type, Options: h.Options, Data: body}, consumed, nil
	}

	if depth >= p.maxDepth {
		return nil, 0, &MalformedContainerError{Type: h.Type, Offset: absOff, Depth: depth}
	}

	rec := &Record{Type: h.Type, Options: h.Options, container: true}
	off := 0
	for off < len(body) {
		if len(body)-off < HeaderSize {
			// residue too short for a child header: keep it as
			// trailing padding, emitted verbatim on serialize
			rec.trailing = body[off:]
			break
		}
		child, n, err := p.parseRecord(body[off:], absOff+HeaderSize+off, depth+1)
		if err != nil {
			if p.strict {
				return nil, 0, err
			}
			child, n = p.recover(body[off:], absOff+HeaderSize+off, err)
		}
		rec.Children = append(rec.Children, child)
		off += n
	}
	return rec, consumed, nil
}
