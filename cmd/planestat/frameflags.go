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

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ajroetker/go-vapours/hwy/contrib/format"
	"github.com/ajroetker/go-vapours/hwy/contrib/image"
	"github.com/ajroetker/go-vapours/internal/hostmem"
)

// frameFlags describe the raw frame a command reads or writes.
type frameFlags struct {
	format   string
	width    int
	height   int
	bottomUp bool
	mmap     bool
}

func (f *frameFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.format, "format", "f", "GRAY8", "frame format preset, see 'planestat formats'")
	fs.IntVar(&f.width, "width", 0, "frame width in samples")
	fs.IntVar(&f.height, "height", 0, "frame height in rows")
	fs.BoolVar(&f.bottomUp, "bottom-up", false, "rows are stored last row first")
	fs.BoolVar(&f.mmap, "mmap", false, "hold the frame in memory mapped outside the Go heap")
}

func (f *frameFlags) videoFormat() (format.VideoFormat, error) {
	vf, ok := format.ByName(f.format)
	if !ok {
		return format.VideoFormat{}, fmt.Errorf("unknown format %q", f.format)
	}
	return vf, nil
}

// alloc returns an empty frame of the format and size the flags name.
func (f *frameFlags) alloc() (*image.HostFrame, error) {
	vf, err := f.videoFormat()
	if err != nil {
		return nil, err
	}
	if f.width <= 0 || f.height <= 0 {
		return nil, fmt.Errorf("--width and --height must be positive, got %dx%d", f.width, f.height)
	}
	var alloc image.Allocator = image.HeapAllocator{}
	if f.mmap {
		alloc = hostmem.Allocator{}
	}
	return image.AllocFrame(vf, f.width, f.height, alloc)
}

// rawSize returns the number of bytes a raw frame of fr occupies on disk.
func rawSize(fr *image.HostFrame) int {
	n := 0
	for i := range fr.NumPlanes() {
		p, _ := fr.Plane(i)
		n += p.Len() * p.SampleSize()
	}
	return n
}

// closeFrame closes fr and reports its error through err unless err
// already holds one.
func closeFrame(fr *image.HostFrame, err *error) {
	if cerr := fr.Close(); *err == nil {
		*err = cerr
	}
}
