// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

import "fmt"

// TruncatedRecordError reports a record whose declared payload length
// exceeds the bytes remaining in the input.
type TruncatedRecordError struct {
	Type      uint16
	Offset    int
	Declared  uint32
	Remaining int
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("truncated record 0x%04X at offset %d: declared %d bytes, %d remaining",
		e.Type, e.Offset, e.Declared, e.Remaining)
}

// MalformedContainerError reports a container that violates a structural
// sanity bound (currently: nesting depth).
type MalformedContainerError struct {
	Type   uint16
	Offset int
	Depth  int
}

func (e *MalformedContainerError) Error() string {
	return fmt.Sprintf("malformed container 0x%04X at offset %d: nesting depth %d exceeds limit",
		e.Type, e.Offset, e.Depth)
}
