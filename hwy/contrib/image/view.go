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
	"unsafe"

	"github.com/ajroetker/go-vapours/hwy"
)

// strided holds what read and write views share: the validated plane, the
// borrow that keeps other views away, and the sample-typed accessors.
type strided[T hwy.Lanes] struct {
	plane    Plane
	claim    *borrow
	released bool
}

// checkSampleType gates every reinterpretation of plane memory as []T.
func checkSampleType[T hwy.Lanes](p Plane) error {
	if size := hwy.SizeOf[T](); size != p.sampleSize {
		return fmt.Errorf("%w: %d-byte sample type over %d-byte plane", ErrSampleSizeMismatch, size, p.sampleSize)
	}
	if p.IsEmpty() {
		return nil
	}
	align := hwy.AlignOf[T]()
	if uintptr(p.base)%uintptr(align) != 0 {
		return fmt.Errorf("%w: base %p not aligned to %d bytes", ErrInvalidGeometry, p.base, align)
	}
	if p.height > 1 && p.stride%align != 0 {
		return fmt.Errorf("%w: stride %d not a multiple of %d bytes", ErrInvalidGeometry, p.stride, align)
	}
	return nil
}

func newStrided[T hwy.Lanes](p Plane, mode borrowMode) (strided[T], error) {
	if err := checkSampleType[T](p); err != nil {
		return strided[T]{}, err
	}
	claim, err := views.acquire(p, mode)
	if err != nil {
		return strided[T]{}, err
	}
	return strided[T]{plane: p, claim: claim}, nil
}

func (s *strided[T]) mustLive() {
	if s.released {
		panic(ErrViewReleased)
	}
}

// row returns row r as a slice whose len and cap are both the plane width,
// so neither indexing nor append can reach the stride padding.
func (s *strided[T]) row(r int) []T {
	if s.plane.width == 0 {
		return nil
	}
	return unsafe.Slice((*T)(s.plane.rowPtr(r)), s.plane.width)
}

func (s *strided[T]) checkRow(r int) error {
	if r < 0 || r >= s.plane.height {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, r, s.plane.height)
	}
	return nil
}

func (s *strided[T]) checkCoord(row, col int) error {
	if !s.plane.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d plane", ErrOutOfBounds, row, col, s.plane.width, s.plane.height)
	}
	return nil
}

// Plane returns the plane the view was built over.
func (s *strided[T]) Plane() Plane {
	return s.plane
}

// Width returns the number of samples per row.
func (s *strided[T]) Width() int {
	return s.plane.width
}

// Height returns the number of rows.
func (s *strided[T]) Height() int {
	return s.plane.height
}

// Len returns width*height, the number of samples All yields.
func (s *strided[T]) Len() int {
	return s.plane.Len()
}

// At returns the sample at (row, col), or ErrOutOfBounds.
func (s *strided[T]) At(row, col int) (T, error) {
	s.mustLive()
	if err := s.checkCoord(row, col); err != nil {
		var zero T
		return zero, err
	}
	return *(*T)(s.plane.at(row, col)), nil
}

// UnsafeAt returns the sample at (row, col) without a bounds check.
// The caller must already know that 0 <= row < Height and 0 <= col < Width;
// anything else reads memory outside the plane.
func (s *strided[T]) UnsafeAt(row, col int) T {
	return *(*T)(s.plane.at(row, col))
}

// AtEdge returns the sample at (row, col) after mapping out-of-range
// coordinates back into the plane with edge. The zero value is returned for
// empty planes.
func (s *strided[T]) AtEdge(row, col int, edge Edge) T {
	s.mustLive()
	if s.plane.IsEmpty() {
		var zero T
		return zero
	}
	return *(*T)(s.plane.at(edge.Index(row, s.plane.height), edge.Index(col, s.plane.width)))
}

// All returns the samples in row-major order, skipping stride padding.
// The sequence is lazy and can be ranged over any number of times.
func (s *strided[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.mustLive()
		for r := range s.plane.height {
			for _, v := range s.row(r) {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// CopyTo packs the samples row-major into dst and returns how many were
// copied, which is min(len(dst), Len()).
func (s *strided[T]) CopyTo(dst []T) int {
	s.mustLive()
	n := 0
	for r := 0; r < s.plane.height && n < len(dst); r++ {
		n += copy(dst[n:], s.row(r))
	}
	return n
}

// Release ends the view's claim on the plane. The view must not be used
// afterwards; doing so panics with ErrViewReleased. Releasing twice is a
// no-op.
func (s *strided[T]) Release() {
	if s.released {
		return
	}
	s.released = true
	views.release(s.claim)
}

// View is a read view over a plane with samples of type T.
//
// A View coexists with other read views over the same memory but never with
// a write view. Release it (typically with defer) before the host frame
// goes away.
type View[T hwy.Lanes] struct {
	strided[T]
}

// NewView builds a read view over p.
//
// It fails with ErrSampleSizeMismatch if T's width differs from
// p.SampleSize(), with ErrInvalidGeometry if p's memory is not aligned for
// T, and with ErrViewConflict while a write view overlaps p.
func NewView[T hwy.Lanes](p Plane) (*View[T], error) {
	s, err := newStrided[T](p, borrowShared)
	if err != nil {
		return nil, err
	}
	return &View[T]{strided: s}, nil
}

// Row returns row r as a read-only sequence of Width samples.
func (v *View[T]) Row(r int) (Row[T], error) {
	v.mustLive()
	if err := v.checkRow(r); err != nil {
		return Row[T]{}, err
	}
	return Row[T]{samples: v.row(r)}, nil
}

// Rows yields each row index with its samples. Empty planes yield nothing.
func (v *View[T]) Rows() iter.Seq2[int, Row[T]] {
	return func(yield func(int, Row[T]) bool) {
		v.mustLive()
		if v.plane.IsEmpty() {
			return
		}
		for r := range v.plane.height {
			if !yield(r, Row[T]{samples: v.row(r)}) {
				return
			}
		}
	}
}

// Row is a read-only window onto one row of a plane. It is only valid while
// the view it came from is live.
type Row[T hwy.Lanes] struct {
	samples []T
}

// Len returns the number of samples in the row.
func (r Row[T]) Len() int {
	return len(r.samples)
}

// At returns sample i. Like a slice index, it panics if i is out of range.
func (r Row[T]) At(i int) T {
	return r.samples[i]
}

// All yields each column index with its sample.
func (r Row[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range r.samples {
			if !yield(i, v) {
				return
			}
		}
	}
}

// CopyTo copies the row into dst and returns the number of samples copied.
func (r Row[T]) CopyTo(dst []T) int {
	return copy(dst, r.samples)
}
