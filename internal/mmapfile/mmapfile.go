// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmapfile maps a document file read-only into memory.  Parsing
// slices directly into the mapping, so the mapping must outlive every
// record tree built from it.
package mmapfile

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

type File struct {
	data     []byte
	isClosed atomic.Bool
}

// Open maps path read-only.  Empty files map to an empty (unmapped)
// buffer.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	stats, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	if stats.Size() == 0 {
		return &File{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(stats.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap(%s): %w", path, err)
	}
	// the parser consumes the stream front to back
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}

	return &File{data: data}, nil
}

// Data returns the mapped bytes.  Invalid after Close.
func (f *File) Data() []byte {
	return f.data
}

func (f *File) Len() int {
	return len(f.data)
}

func (f *File) Close() error {
	if f.isClosed.Swap(true) || f.data == nil {
		return nil
	}
	data := f.data
	f.data = nil
	return unix.Munmap(data)
}
