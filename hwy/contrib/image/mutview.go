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

package image

import (
	"fmt"
	"iter"

	"github.com/ajroetker/go-vapours/hwy"
)

// MutView is a write view over a plane with samples of type T.
//
// While a MutView is live no other view, read or write, may overlap its
// memory. Writes go straight to the plane: there is no buffering, flush or
// undo.
type MutView[T hwy.Lanes] struct {
	strided[T]
}

// NewMutView builds a write view over p.
//
// It fails like NewView, and additionally with ErrViewConflict while any
// other view overlaps p.
func NewMutView[T hwy.Lanes](p Plane) (*MutView[T], error) {
	s, err := newStrided[T](p, borrowExclusive)
	if err != nil {
		return nil, err
	}
	return &MutView[T]{strided: s}, nil
}

// Row returns row r as a mutable slice. Its len and cap are Width, so
// appending reallocates instead of writing into the padding.
func (m *MutView[T]) Row(r int) ([]T, error) {
	m.mustLive()
	if err := m.checkRow(r); err != nil {
		return nil, err
	}
	return m.row(r), nil
}

// Rows yields each row index with its mutable samples. Empty planes yield
// nothing.
func (m *MutView[T]) Rows() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		m.mustLive()
		if m.plane.IsEmpty() {
			return
		}
		for r := range m.plane.height {
			if !yield(r, m.row(r)) {
				return
			}
		}
	}
}

// Ptr returns a pointer to the sample at (row, col), or ErrOutOfBounds.
func (m *MutView[T]) Ptr(row, col int) (*T, error) {
	m.mustLive()
	if err := m.checkCoord(row, col); err != nil {
		return nil, err
	}
	return (*T)(m.plane.at(row, col)), nil
}

// Set stores v at (row, col), or returns ErrOutOfBounds.
func (m *MutView[T]) Set(row, col int, v T) error {
	p, err := m.Ptr(row, col)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// UnsafeSet stores v at (row, col) without a bounds check, under the same
// contract as UnsafeAt.
func (m *MutView[T]) UnsafeSet(row, col int, v T) {
	*(*T)(m.plane.at(row, col)) = v
}

// Fill sets every sample to v. Padding is left untouched.
func (m *MutView[T]) Fill(v T) {
	m.mustLive()
	for r := range m.plane.height {
		row := m.row(r)
		for i := range row {
			row[i] = v
		}
	}
}

// CopyFrom unpacks src, laid out row-major without padding, into the plane.
// src must hold exactly Len samples.
func (m *MutView[T]) CopyFrom(src []T) error {
	m.mustLive()
	if len(src) != m.plane.Len() {
		return fmt.Errorf("%w: %d samples for a %dx%d plane", ErrOutOfBounds, len(src), m.plane.width, m.plane.height)
	}
	w := m.plane.width
	for r := range m.plane.height {
		copy(m.row(r), src[r*w:(r+1)*w])
	}
	return nil
}
