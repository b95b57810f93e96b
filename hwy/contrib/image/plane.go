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
	"math"
	"unsafe"
)

// Plane describes the memory layout of one plane of a frame.
//
// A Plane does not own its memory: base points into a buffer owned by the
// host (or by a Go slice) for the duration of a call, and copying a Plane
// never copies pixels. Row r starts at base + r*stride; stride is signed so
// that bottom-up layouts put base on the last physical row.
type Plane struct {
	base       unsafe.Pointer
	stride     int // bytes between logical rows, may be negative
	width      int // samples per row
	height     int // rows
	sampleSize int // bytes per sample
}

// NewPlane validates a plane geometry handed in by a host.
//
// It fails with ErrInvalidGeometry if width or height is negative, if
// sampleSize is not 1, 2 or 4, if base is nil for a non-empty plane, or if
// consecutive rows would overlap. It fails with ErrGeometryOverflow if the
// plane's byte extent cannot be represented.
func NewPlane(base unsafe.Pointer, stride, width, height, sampleSize int) (Plane, error) {
	rowBytes, span, err := checkGeometry(stride, width, height, sampleSize)
	if err != nil {
		return Plane{}, err
	}
	p := Plane{base: base, stride: stride, width: width, height: height, sampleSize: sampleSize}
	if p.IsEmpty() {
		p.base = nil
		return p, nil
	}
	if base == nil {
		return Plane{}, fmt.Errorf("%w: nil base for %dx%d plane", ErrInvalidGeometry, width, height)
	}

	addr := uintptr(base)
	if stride < 0 {
		if addr < uintptr(span) {
			return Plane{}, fmt.Errorf("%w: rows extend %d bytes below base %#x", ErrGeometryOverflow, span, addr)
		}
	} else if addr+uintptr(span)+uintptr(rowBytes) < addr {
		return Plane{}, fmt.Errorf("%w: rows extend past the end of the address space", ErrGeometryOverflow)
	}
	return p, nil
}

// PlaneFromBytes describes a plane stored in buf, with row 0 starting at
// byte offset. For bottom-up layouts pass the offset of the last physical
// row and a negative stride. Every row must lie inside buf, otherwise
// ErrOutOfBounds is returned.
func PlaneFromBytes(buf []byte, offset, stride, width, height, sampleSize int) (Plane, error) {
	rowBytes, span, err := checkGeometry(stride, width, height, sampleSize)
	if err != nil {
		return Plane{}, err
	}
	if width == 0 || height == 0 {
		return Plane{stride: stride, width: width, height: height, sampleSize: sampleSize}, nil
	}

	// Compare distances rather than end offsets so that nothing can wrap.
	inside := offset >= 0 && offset <= len(buf)-rowBytes
	if inside && stride >= 0 {
		inside = span <= len(buf)-rowBytes-offset
	} else if inside {
		inside = span <= offset
	}
	if !inside {
		return Plane{}, fmt.Errorf("%w: %d rows of stride %d from offset %d outside %d-byte buffer",
			ErrOutOfBounds, height, stride, offset, len(buf))
	}
	return NewPlane(unsafe.Pointer(&buf[offset]), stride, width, height, sampleSize)
}

// checkGeometry returns the logical row size in bytes and the distance in
// bytes between the first and the last row.
func checkGeometry(stride, width, height, sampleSize int) (rowBytes, span int, err error) {
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidGeometry, width, height)
	}
	switch sampleSize {
	case 1, 2, 4:
	default:
		return 0, 0, fmt.Errorf("%w: unsupported sample size %d", ErrInvalidGeometry, sampleSize)
	}
	rowBytes, ok := mulInt(width, sampleSize)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d samples of %d bytes", ErrGeometryOverflow, width, sampleSize)
	}
	if width == 0 || height == 0 {
		return rowBytes, 0, nil
	}
	if stride == math.MinInt {
		return 0, 0, fmt.Errorf("%w: stride %d", ErrGeometryOverflow, stride)
	}

	absStride := stride
	if absStride < 0 {
		absStride = -absStride
	}
	if height > 1 && absStride < rowBytes {
		return 0, 0, fmt.Errorf("%w: stride %d shorter than a %d-byte row", ErrInvalidGeometry, stride, rowBytes)
	}
	span, ok = mulInt(height-1, absStride)
	if !ok || span > math.MaxInt-rowBytes {
		return 0, 0, fmt.Errorf("%w: %d rows of stride %d", ErrGeometryOverflow, height, stride)
	}
	return rowBytes, span, nil
}

// mulInt multiplies a and b, reporting false on overflow.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// Width returns the number of samples per row.
func (p Plane) Width() int {
	return p.width
}

// Height returns the number of rows.
func (p Plane) Height() int {
	return p.height
}

// Stride returns the signed byte distance between consecutive rows.
func (p Plane) Stride() int {
	return p.stride
}

// SampleSize returns the byte width of one sample.
func (p Plane) SampleSize() int {
	return p.sampleSize
}

// Base returns the address of row 0. It is nil for empty planes.
func (p Plane) Base() unsafe.Pointer {
	return p.base
}

// RowBytes returns the logical size of a row in bytes, excluding padding.
func (p Plane) RowBytes() int {
	return p.width * p.sampleSize
}

// Len returns the number of samples, width*height.
func (p Plane) Len() int {
	return p.width * p.height
}

// IsEmpty reports whether the plane has no samples.
func (p Plane) IsEmpty() bool {
	return p.width == 0 || p.height == 0
}

// Bounds returns the rectangle of valid coordinates.
func (p Plane) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: p.width, Y1: p.height}
}

// InBounds reports whether (row, col) addresses a sample of the plane.
func (p Plane) InBounds(row, col int) bool {
	return row >= 0 && row < p.height && col >= 0 && col < p.width
}

// RowOffset returns the signed byte offset of row r from Base.
func (p Plane) RowOffset(r int) (int, error) {
	if r < 0 || r >= p.height {
		return 0, fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, r, p.height)
	}
	off, ok := mulInt(r, p.stride)
	if !ok {
		return 0, fmt.Errorf("%w: row %d * stride %d", ErrGeometryOverflow, r, p.stride)
	}
	return off, nil
}

// Offset returns the signed byte offset of sample (row, col) from Base.
func (p Plane) Offset(row, col int) (int, error) {
	if !p.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d plane", ErrOutOfBounds, row, col, p.width, p.height)
	}
	off, err := p.RowOffset(row)
	if err != nil {
		return 0, err
	}
	return off + col*p.sampleSize, nil
}

// Sub returns the plane restricted to r, sharing memory with p.
// r must lie inside Bounds.
func (p Plane) Sub(r Rect) (Plane, error) {
	if r.X0 < 0 || r.Y0 < 0 || r.X1 > p.width || r.Y1 > p.height || r.X1 < r.X0 || r.Y1 < r.Y0 {
		return Plane{}, fmt.Errorf("%w: rect %v outside %dx%d plane", ErrOutOfBounds, r, p.width, p.height)
	}
	sub := Plane{stride: p.stride, width: r.Width(), height: r.Height(), sampleSize: p.sampleSize}
	if !sub.IsEmpty() {
		sub.base = p.at(r.Y0, r.X0)
	}
	return sub, nil
}

// Flip returns the same memory viewed bottom-up: row 0 of the result is the
// last row of p.
func (p Plane) Flip() Plane {
	if p.IsEmpty() {
		p.stride = -p.stride
		return p
	}
	p.base = p.rowPtr(p.height - 1)
	p.stride = -p.stride
	return p
}

// String implements fmt.Stringer.
func (p Plane) String() string {
	return fmt.Sprintf("plane{%dx%d stride=%d sample=%dB base=%p}",
		p.width, p.height, p.stride, p.sampleSize, p.base)
}

// rowPtr returns the address of row r. Callers establish 0 <= r < height on
// a non-empty plane; validation made r*stride overflow-free.
func (p Plane) rowPtr(r int) unsafe.Pointer {
	return unsafe.Add(p.base, r*p.stride)
}

// at returns the address of sample (row, col) under the same contract as rowPtr.
func (p Plane) at(row, col int) unsafe.Pointer {
	return unsafe.Add(p.base, row*p.stride+col*p.sampleSize)
}

// extent returns the half-open address range touched by the plane's rows.
func (p Plane) extent() (lo, hi uintptr) {
	if p.IsEmpty() {
		return 0, 0
	}
	first := uintptr(p.base)
	last := uintptr(p.rowPtr(p.height - 1))
	lo, hi = min(first, last), max(first, last)
	return lo, hi + uintptr(p.RowBytes())
}
