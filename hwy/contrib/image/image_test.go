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
	"errors"
	"testing"

	"github.com/ajroetker/go-vapours/hwy"
)

func TestNewImage(t *testing.T) {
	img := NewImage[uint16](100, 50)

	if img.Width() != 100 {
		t.Errorf("Width: got %d, want 100", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Height: got %d, want 50", img.Height())
	}

	// Row bytes are padded to the register width.
	if img.Stride() < 100 {
		t.Errorf("Stride: got %d, want >= 100", img.Stride())
	}
	if (img.Stride()*2)%hwy.CurrentWidth() != 0 {
		t.Errorf("Stride not aligned: got %d samples, want multiple of %d bytes", img.Stride(), hwy.CurrentWidth())
	}
}

func TestNewImage_ZeroDimensions(t *testing.T) {
	img := NewImage[float32](0, 0)
	if img.Width() != 0 || img.Height() != 0 {
		t.Errorf("Zero dimensions: got %dx%d, want 0x0", img.Width(), img.Height())
	}

	img = NewImage[float32](-1, 10)
	if img.Width() != 0 || img.Height() != 0 {
		t.Errorf("Negative width: got %dx%d, want 0x0", img.Width(), img.Height())
	}

	p, err := img.Plane()
	if err != nil {
		t.Fatalf("Plane of empty image: %v", err)
	}
	if !p.IsEmpty() {
		t.Error("Plane of empty image should be empty")
	}
}

func TestImage_Row(t *testing.T) {
	img := NewImage[uint8](10, 5)

	row0 := img.Row(0)
	if len(row0) != 10 || cap(row0) != 10 {
		t.Errorf("Row(0): got len %d cap %d, want 10 and 10", len(row0), cap(row0))
	}
	for i := range 10 {
		row0[i] = uint8(i)
	}

	row1 := img.Row(1)
	row1[0] = 99
	if row0[0] == 99 {
		t.Error("Rows should be independent")
	}

	if img.Row(-1) != nil {
		t.Error("Row(-1) should return nil")
	}
	if img.Row(5) != nil {
		t.Error("Row(5) should return nil")
	}
}

func TestImage_AtSet(t *testing.T) {
	img := NewImage[float32](10, 10)

	img.Set(5, 7, 42.0)
	if got := img.At(5, 7); got != 42.0 {
		t.Errorf("At(5,7): got %v, want 42.0", got)
	}

	// Out of bounds reads zero and writes are dropped
	if got := img.At(-1, 0); got != 0 {
		t.Errorf("At(-1,0): got %v, want 0", got)
	}
	if got := img.At(10, 0); got != 0 {
		t.Errorf("At(10,0): got %v, want 0", got)
	}
	img.Set(-1, 0, 999)
	img.Set(10, 0, 999)
}

func TestImage_Plane(t *testing.T) {
	img := NewImage[uint16](7, 3)
	img.Set(6, 2, 1234)

	p, err := img.Plane()
	if err != nil {
		t.Fatalf("Plane: %v", err)
	}
	if p.Width() != 7 || p.Height() != 3 || p.SampleSize() != 2 {
		t.Errorf("Plane geometry: got %v", p)
	}
	if p.Stride() != img.Stride()*2 {
		t.Errorf("Plane stride: got %d, want %d", p.Stride(), img.Stride()*2)
	}

	v, err := NewView[uint16](p)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	defer v.Release()
	if got, _ := v.At(2, 6); got != 1234 {
		t.Errorf("View.At(2,6): got %d, want 1234", got)
	}
}

func TestImage_PlaneRejectsWideSamples(t *testing.T) {
	img := NewImage[float64](4, 4)
	if _, err := img.Plane(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Plane of float64 image: got %v, want ErrInvalidGeometry", err)
	}
}

func TestImage_Bounds(t *testing.T) {
	img := NewImage[float32](100, 50)
	bounds := img.Bounds()

	if bounds.X0 != 0 || bounds.Y0 != 0 {
		t.Errorf("Bounds origin: got (%d,%d), want (0,0)", bounds.X0, bounds.Y0)
	}
	if bounds.Width() != 100 || bounds.Height() != 50 {
		t.Errorf("Bounds dimensions: got %dx%d, want 100x50", bounds.Width(), bounds.Height())
	}
}

func TestRect(t *testing.T) {
	r := Rect{X0: 10, Y0: 20, X1: 100, Y1: 80}

	if r.Width() != 90 {
		t.Errorf("Width: got %d, want 90", r.Width())
	}
	if r.Height() != 60 {
		t.Errorf("Height: got %d, want 60", r.Height())
	}
	if r.IsEmpty() {
		t.Error("IsEmpty should be false")
	}

	empty := Rect{X0: 10, Y0: 10, X1: 10, Y1: 10}
	if !empty.IsEmpty() {
		t.Error("Zero-area rect should be empty")
	}

	negative := Rect{X0: 10, Y0: 10, X1: 5, Y1: 5}
	if !negative.IsEmpty() {
		t.Error("Negative-area rect should be empty")
	}
}

func TestRect_Intersect(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	b := Rect{X0: 50, Y0: 50, X1: 150, Y1: 150}

	got := a.Intersect(b)
	if want := (Rect{X0: 50, Y0: 50, X1: 100, Y1: 100}); got != want {
		t.Errorf("Intersect: got %v, want %v", got, want)
	}

	c := Rect{X0: 200, Y0: 200, X1: 300, Y1: 300}
	if !a.Intersect(c).IsEmpty() {
		t.Error("Non-overlapping rects should have empty intersection")
	}
}

func TestMirror(t *testing.T) {
	tests := []struct {
		index, size, want int
	}{
		{0, 10, 0},
		{5, 10, 5},
		{9, 10, 9},
		{10, 10, 9},  // Mirror at boundary
		{11, 10, 8},  // Mirror past boundary
		{-1, 10, 0},  // Mirror negative
		{-2, 10, 1},  // Mirror more negative
		{20, 10, 0},  // Double wrap
		{-10, 10, 9}, // Negative wrap
		{3, 0, 0},
	}

	for _, tt := range tests {
		got := Mirror(tt.index, tt.size)
		if got != tt.want {
			t.Errorf("Mirror(%d, %d) = %d, want %d", tt.index, tt.size, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		index, size, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 9},
		{100, 10, 9},
		{-1, 10, 0},
		{-100, 10, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		got := Clamp(tt.index, tt.size)
		if got != tt.want {
			t.Errorf("Clamp(%d, %d) = %d, want %d", tt.index, tt.size, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		index, size, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 0},
		{25, 10, 5},
		{-1, 10, 9},
		{-10, 10, 0},
		{-11, 10, 9},
	}

	for _, tt := range tests {
		got := Wrap(tt.index, tt.size)
		if got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.index, tt.size, got, tt.want)
		}
	}
}

func TestEdgeIndex(t *testing.T) {
	tests := []struct {
		edge              Edge
		index, size, want int
	}{
		{EdgeClamp, -3, 4, 0},
		{EdgeClamp, 6, 4, 3},
		{EdgeMirror, -1, 4, 0},
		{EdgeMirror, 4, 4, 3},
		{EdgeWrap, -1, 4, 3},
		{EdgeWrap, 5, 4, 1},
	}
	for _, tt := range tests {
		if got := tt.edge.Index(tt.index, tt.size); got != tt.want {
			t.Errorf("Edge(%d).Index(%d, %d) = %d, want %d", tt.edge, tt.index, tt.size, got, tt.want)
		}
	}
}

// Benchmarks

func BenchmarkView_All(b *testing.B) {
	img := NewImage[uint8](1920, 1080)
	p, err := img.Plane()
	if err != nil {
		b.Fatal(err)
	}
	v, err := NewView[uint8](p)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()

	b.ReportAllocs()
	for b.Loop() {
		var sum int
		for s := range v.All() {
			sum += int(s)
		}
		_ = sum
	}
}

func BenchmarkView_Rows(b *testing.B) {
	img := NewImage[float32](1920, 1080)
	p, err := img.Plane()
	if err != nil {
		b.Fatal(err)
	}
	v, err := NewMutView[float32](p)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Release()

	b.ReportAllocs()
	for b.Loop() {
		for _, row := range v.Rows() {
			for i := range row {
				row[i] += 1
			}
		}
	}
}

func BenchmarkNewView(b *testing.B) {
	img := NewImage[uint16](1920, 1080)
	p, err := img.Plane()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		v, err := NewView[uint16](p)
		if err != nil {
			b.Fatal(err)
		}
		v.Release()
	}
}
