// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hostmem provides plane memory that lives outside the Go heap,
// the way a native video host's frame pool does. Views over it exercise
// the same code paths as views over host frames.
package hostmem

import (
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned when a region is closed twice.
var ErrClosed = errors.New("hostmem: region already closed")

// Region is a block of memory obtained from Map.
type Region struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// Map returns a zeroed region of n bytes.
func Map(n int) (*Region, error) {
	if n < 0 {
		return nil, fmt.Errorf("hostmem: negative size %d", n)
	}
	if n == 0 {
		return &Region{}, nil
	}
	data, err := mapMemory(n)
	if err != nil {
		return nil, fmt.Errorf("hostmem: mapping %d bytes: %w", n, err)
	}
	return &Region{data: data}, nil
}

// Bytes returns the region's memory. It must not be used after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the size of the region in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Close returns the memory to the system.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	data := r.data
	r.data = nil
	if len(data) == 0 {
		return nil
	}
	return unmapMemory(data)
}

// Allocator hands out Regions; it satisfies image.Allocator.
type Allocator struct{}

// Alloc maps n bytes and returns them with the matching unmap.
func (Allocator) Alloc(n int) ([]byte, func() error, error) {
	r, err := Map(n)
	if err != nil {
		return nil, nil, err
	}
	return r.Bytes(), r.Close, nil
}
