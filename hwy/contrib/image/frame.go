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

	"github.com/sirupsen/logrus"

	"github.com/ajroetker/go-vapours/hwy"
	"github.com/ajroetker/go-vapours/hwy/contrib/format"
)

// Frame is the host side of a video frame: a fixed number of planes, each
// described for the duration of the current call.
type Frame interface {
	NumPlanes() int
	Plane(n int) (Plane, error)
}

// ReadPlane returns a read view over plane n of f.
// It fails with ErrPlaneIndexOutOfRange if n is not a plane of f.
func ReadPlane[T hwy.Lanes](f Frame, n int) (*View[T], error) {
	p, err := framePlane(f, n)
	if err != nil {
		return nil, err
	}
	return NewView[T](p)
}

// WritePlane returns a write view over plane n of f.
// It fails with ErrPlaneIndexOutOfRange if n is not a plane of f.
func WritePlane[T hwy.Lanes](f Frame, n int) (*MutView[T], error) {
	p, err := framePlane(f, n)
	if err != nil {
		return nil, err
	}
	return NewMutView[T](p)
}

func framePlane(f Frame, n int) (Plane, error) {
	if np := f.NumPlanes(); n < 0 || n >= np {
		return Plane{}, fmt.Errorf("%w: plane %d of %d", ErrPlaneIndexOutOfRange, n, np)
	}
	return f.Plane(n)
}

// HostFrame is a Frame assembled from plane descriptors, as a host adapter
// builds one per call, or as AllocFrame builds one over owned memory.
type HostFrame struct {
	format format.VideoFormat
	planes []Plane
	free   func() error
}

// NewHostFrame checks that planes match f: one plane per format plane, each
// with the format's storage width.
func NewHostFrame(f format.VideoFormat, planes ...Plane) (*HostFrame, error) {
	if len(planes) != f.NumPlanes {
		return nil, fmt.Errorf("%w: %d planes for %s, want %d", ErrInvalidGeometry, len(planes), f, f.NumPlanes)
	}
	for i, p := range planes {
		if p.sampleSize != f.BytesPerSample {
			return nil, fmt.Errorf("%w: plane %d has %d-byte samples, %s stores %d",
				ErrSampleSizeMismatch, i, p.sampleSize, f, f.BytesPerSample)
		}
	}
	return &HostFrame{format: f, planes: planes}, nil
}

// Format returns the frame's video format.
func (f *HostFrame) Format() format.VideoFormat {
	return f.format
}

// NumPlanes returns the number of planes.
func (f *HostFrame) NumPlanes() int {
	return len(f.planes)
}

// Plane returns the descriptor of plane n.
func (f *HostFrame) Plane(n int) (Plane, error) {
	if n < 0 || n >= len(f.planes) {
		return Plane{}, fmt.Errorf("%w: plane %d of %d", ErrPlaneIndexOutOfRange, n, len(f.planes))
	}
	return f.planes[n], nil
}

// Width returns the width of the first plane.
func (f *HostFrame) Width() int {
	if len(f.planes) == 0 {
		return 0
	}
	return f.planes[0].width
}

// Height returns the height of the first plane.
func (f *HostFrame) Height() int {
	if len(f.planes) == 0 {
		return 0
	}
	return f.planes[0].height
}

// Flipped returns a frame over the same memory with every plane read
// bottom-up. The result does not own the memory; close f, not the result.
func (f *HostFrame) Flipped() *HostFrame {
	planes := make([]Plane, len(f.planes))
	for i, p := range f.planes {
		planes[i] = p.Flip()
	}
	return &HostFrame{format: f.format, planes: planes}
}

// Close frees memory obtained by AllocFrame. It fails with ErrViewConflict,
// freeing nothing, while any view over the frame's planes is live. Frames
// built with NewHostFrame or Flipped have nothing to free.
func (f *HostFrame) Close() error {
	if f.free == nil {
		return nil
	}
	for i, p := range f.planes {
		if views.busy(p) {
			return fmt.Errorf("%w: plane %d of %s frame is still viewed", ErrViewConflict, i, f.format)
		}
	}
	free := f.free
	f.free = nil
	return free()
}

// Allocator provides plane memory for AllocFrame.
type Allocator interface {
	// Alloc returns n zeroed bytes and a function releasing them.
	Alloc(n int) (buf []byte, free func() error, err error)
}

// HeapAllocator allocates plane memory on the Go heap.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(n int) ([]byte, func() error, error) {
	return make([]byte, n), func() error { return nil }, nil
}

// AllocFrame lays out a frame of format f in one buffer from alloc (the Go
// heap when alloc is nil). Each row is padded to the SIMD register width
// and each plane starts on a register boundary.
func AllocFrame(f format.VideoFormat, width, height int, alloc Allocator) (*HostFrame, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidGeometry, width, height)
	}
	if alloc == nil {
		alloc = HeapAllocator{}
	}

	type layout struct{ offset, stride, width, height int }
	layouts := make([]layout, f.NumPlanes)
	total := 0
	for i := range layouts {
		pw, ph := f.PlaneWidth(i, width), f.PlaneHeight(i, height)
		rowBytes, ok := mulInt(pw, f.BytesPerSample)
		if !ok {
			return nil, fmt.Errorf("%w: plane %d row of %d samples", ErrGeometryOverflow, i, pw)
		}
		stride := hwy.AlignBytes(rowBytes)
		size, ok := mulInt(stride, ph)
		if !ok || total > math.MaxInt-size {
			return nil, fmt.Errorf("%w: plane %d of %dx%d", ErrGeometryOverflow, i, pw, ph)
		}
		layouts[i] = layout{offset: total, stride: stride, width: pw, height: ph}
		total = hwy.AlignBytes(total + size)
	}

	buf, free, err := alloc.Alloc(total)
	if err != nil {
		return nil, fmt.Errorf("allocating %d bytes for %s frame: %w", total, f, err)
	}

	planes := make([]Plane, len(layouts))
	for i, l := range layouts {
		p, err := PlaneFromBytes(buf, l.offset, l.stride, l.width, l.height, f.BytesPerSample)
		if err != nil {
			_ = free()
			return nil, err
		}
		planes[i] = p
	}

	logrus.WithFields(logrus.Fields{
		"function": "AllocFrame",
		"format":   f.Name(),
		"width":    width,
		"height":   height,
		"bytes":    total,
	}).Debug("Allocated frame")

	return &HostFrame{format: f, planes: planes, free: free}, nil
}
