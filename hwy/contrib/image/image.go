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
	"unsafe"

	"github.com/ajroetker/go-vapours/hwy"
)

// Image is a Go-owned single-channel 2D buffer with SIMD-aligned rows.
// It is the scratch counterpart of host planes: filters use it for
// intermediate results and hand it to views through Plane.
type Image[T hwy.Lanes] struct {
	data   []T
	width  int
	height int
	stride int // elements per row (includes padding)
}

// NewImage creates a zeroed image. Rows are padded to the SIMD register
// width. Non-positive dimensions produce an empty image.
func NewImage[T hwy.Lanes](width, height int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}
	size := hwy.SizeOf[T]()
	stride := hwy.AlignBytes(width*size) / size
	return &Image[T]{
		data:   make([]T, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}
}

// Width returns the image width in samples.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in rows.
func (img *Image[T]) Height() int {
	return img.height
}

// Stride returns the number of elements per row (including padding).
func (img *Image[T]) Stride() int {
	return img.stride
}

// Row returns row y limited to the image width, or nil if y is out of range.
func (img *Image[T]) Row(y int) []T {
	if y < 0 || y >= img.height {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.width : start+img.width]
}

// At returns the value at position (x, y), or zero outside the image.
func (img *Image[T]) At(x, y int) T {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		var zero T
		return zero
	}
	return img.data[y*img.stride+x]
}

// Set sets the value at position (x, y). Out-of-range positions are ignored.
func (img *Image[T]) Set(x, y int, value T) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	img.data[y*img.stride+x] = value
}

// Bounds returns the bounding rectangle of the image.
func (img *Image[T]) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: img.width, Y1: img.height}
}

// Plane describes the image's memory so it can be viewed like a host plane.
// Images of 8-byte samples fail with ErrInvalidGeometry.
func (img *Image[T]) Plane() (Plane, error) {
	size := hwy.SizeOf[T]()
	if len(img.data) == 0 {
		return NewPlane(nil, img.stride*size, img.width, img.height, size)
	}
	return NewPlane(unsafe.Pointer(unsafe.SliceData(img.data)), img.stride*size, img.width, img.height, size)
}

// Rect defines a rectangular region within a plane.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: max(r.X0, other.X0),
		Y0: max(r.Y0, other.Y0),
		X1: min(r.X1, other.X1),
		Y1: min(r.Y1, other.Y1),
	}
}

// Edge maps coordinates outside [0, size) back into range.
type Edge int

const (
	// EdgeClamp repeats the edge sample.
	EdgeClamp Edge = iota
	// EdgeMirror reflects at the boundary.
	EdgeMirror
	// EdgeWrap tiles the plane.
	EdgeWrap
)

// Index maps index into [0, size) according to e.
func (e Edge) Index(index, size int) int {
	switch e {
	case EdgeMirror:
		return Mirror(index, size)
	case EdgeWrap:
		return Wrap(index, size)
	default:
		return Clamp(index, size)
	}
}

// Mirror returns the mirrored index for out-of-bounds coordinates.
// Given bounds [0, size), mirrors index to stay within bounds.
func Mirror(index, size int) int {
	if size <= 0 {
		return 0
	}
	if index < 0 {
		index = -index - 1
	}
	if index >= size {
		period := 2 * size
		index = index % period
		if index >= size {
			index = period - index - 1
		}
	}
	return index
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 || size <= 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

// Wrap returns index wrapped to [0, size) using modulo.
func Wrap(index, size int) int {
	if size <= 0 {
		return 0
	}
	index = index % size
	if index < 0 {
		index += size
	}
	return index
}
