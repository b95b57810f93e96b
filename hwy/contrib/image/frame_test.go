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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-vapours/hwy"
	"github.com/ajroetker/go-vapours/hwy/contrib/format"
	"github.com/ajroetker/go-vapours/internal/hostmem"
)

func TestPlaneIndexOutOfRange(t *testing.T) {
	f, err := AllocFrame(format.GRAY8, 4, 4, nil)
	require.NoError(t, err)
	defer f.Close()

	_, err = ReadPlane[uint8](f, 1)
	assert.ErrorIs(t, err, ErrPlaneIndexOutOfRange)
	_, err = WritePlane[uint8](f, -1)
	assert.ErrorIs(t, err, ErrPlaneIndexOutOfRange)
	_, err = f.Plane(3)
	assert.ErrorIs(t, err, ErrPlaneIndexOutOfRange)

	v, err := ReadPlane[uint8](f, 0)
	require.NoError(t, err)
	v.Release()
}

func TestNewHostFrame(t *testing.T) {
	buf := make([]byte, 64)
	luma, err := PlaneFromBytes(buf, 0, 8, 8, 4, 1)
	require.NoError(t, err)
	wide, err := PlaneFromBytes(buf, 32, 8, 4, 4, 2)
	require.NoError(t, err)

	f, err := NewHostFrame(format.GRAY8, luma)
	require.NoError(t, err)
	assert.Equal(t, 1, f.NumPlanes())
	assert.Equal(t, 8, f.Width())
	assert.Equal(t, 4, f.Height())
	assert.Equal(t, format.GRAY8, f.Format())
	assert.NoError(t, f.Close())

	_, err = NewHostFrame(format.YUV444P8, luma)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = NewHostFrame(format.GRAY8, wide)
	assert.ErrorIs(t, err, ErrSampleSizeMismatch)

	// the view type must still match the format's storage width
	f16, err := NewHostFrame(format.GRAY16, wide)
	require.NoError(t, err)
	_, err = ReadPlane[uint8](f16, 0)
	assert.ErrorIs(t, err, ErrSampleSizeMismatch)
	_, err = ReadPlane[uint32](f16, 0)
	assert.ErrorIs(t, err, ErrSampleSizeMismatch)
}

func TestAllocFrameLayout(t *testing.T) {
	allocators := map[string]Allocator{
		"heap":    HeapAllocator{},
		"hostmem": hostmem.Allocator{},
	}
	for name, alloc := range allocators {
		t.Run(name, func(t *testing.T) {
			f, err := AllocFrame(format.YUV420P10, 37, 11, alloc)
			require.NoError(t, err)
			defer f.Close()

			require.Equal(t, 3, f.NumPlanes())
			wantDims := [][2]int{{37, 11}, {18, 5}, {18, 5}}
			for i, want := range wantDims {
				p, err := f.Plane(i)
				require.NoError(t, err)
				assert.Equal(t, want[0], p.Width(), "plane %d width", i)
				assert.Equal(t, want[1], p.Height(), "plane %d height", i)
				assert.Equal(t, 2, p.SampleSize())
				assert.Zero(t, p.Stride()%hwy.CurrentWidth(), "plane %d stride %d", i, p.Stride())
				assert.GreaterOrEqual(t, p.Stride(), p.RowBytes())
			}

			// planes of one frame never alias
			var ws []*MutView[uint16]
			for i := range f.NumPlanes() {
				w, err := WritePlane[uint16](f, i)
				require.NoError(t, err, "plane %d", i)
				ws = append(ws, w)
			}
			for i, w := range ws {
				w.Fill(uint16(100 * (i + 1)))
			}
			for _, w := range ws {
				w.Release()
			}

			for i := range f.NumPlanes() {
				v, err := ReadPlane[uint16](f, i)
				require.NoError(t, err)
				for s := range v.All() {
					if s != uint16(100*(i+1)) {
						t.Errorf("plane %d: got %d, want %d", i, s, 100*(i+1))
						break
					}
				}
				v.Release()
			}
		})
	}
	assert.Zero(t, views.count())
}

func TestAllocFrameErrors(t *testing.T) {
	_, err := AllocFrame(format.VideoFormat{}, 4, 4, nil)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = AllocFrame(format.GRAY8, -1, 4, nil)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	f, err := AllocFrame(format.GRAYS, 0, 0, nil)
	require.NoError(t, err)
	v, err := ReadPlane[float32](f, 0)
	require.NoError(t, err)
	assert.Zero(t, v.Len())
	v.Release()
	assert.NoError(t, f.Close())
}

func TestFlippedFrame(t *testing.T) {
	f, err := AllocFrame(format.GRAY8, 3, 3, nil)
	require.NoError(t, err)
	defer f.Close()

	w, err := WritePlane[uint8](f, 0)
	require.NoError(t, err)
	for r, row := range w.Rows() {
		for c := range row {
			row[c] = uint8(r*3 + c)
		}
	}
	w.Release()

	flipped := f.Flipped()
	assert.NoError(t, flipped.Close(), "flipped frames own nothing")

	v, err := ReadPlane[uint8](flipped, 0)
	require.NoError(t, err)
	defer v.Release()
	row, err := v.Row(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), row.At(0))

	// the original and the flipped frame share memory
	_, err = WritePlane[uint8](f, 0)
	assert.ErrorIs(t, err, ErrViewConflict)
}

func TestConcurrentPlaneWriters(t *testing.T) {
	f, err := AllocFrame(format.YUV444PS, 64, 32, nil)
	require.NoError(t, err)
	defer f.Close()

	var g errgroup.Group
	for i := range f.NumPlanes() {
		g.Go(func() error {
			w, err := WritePlane[float32](f, i)
			if err != nil {
				return err
			}
			defer w.Release()
			for _, row := range w.Rows() {
				for c := range row {
					row[c] = float32(i) + float32(c)/64
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := range f.NumPlanes() {
		v, err := ReadPlane[float32](f, i)
		require.NoError(t, err)
		got, err := v.At(31, 63)
		require.NoError(t, err)
		assert.Equal(t, float32(i)+float32(63)/64, got)
		v.Release()
	}
}

func TestCloseFrameWithLiveView(t *testing.T) {
	f, err := AllocFrame(format.YUV420P8, 16, 8, hostmem.Allocator{})
	require.NoError(t, err)

	v, err := ReadPlane[uint8](f, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ErrViewConflict)

	// memory is still mapped and readable
	got, err := v.At(3, 7)
	require.NoError(t, err)
	assert.Zero(t, got)
	v.Release()

	w, err := WritePlane[uint8](f.Flipped(), 0)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ErrViewConflict, "a flipped view covers the same memory")
	w.Release()

	require.NoError(t, f.Close())
	assert.Zero(t, views.count())

	// nothing is left registered against the next mapping
	g, err := AllocFrame(format.YUV420P8, 16, 8, hostmem.Allocator{})
	require.NoError(t, err)
	m, err := WritePlane[uint8](g, 2)
	require.NoError(t, err)
	m.Release()
	assert.NoError(t, g.Close())
}

func TestCloseFrameTwice(t *testing.T) {
	f, err := AllocFrame(format.GRAY8, 8, 8, hostmem.Allocator{})
	require.NoError(t, err)
	assert.NoError(t, f.Close())
	assert.NoError(t, f.Close())
}
