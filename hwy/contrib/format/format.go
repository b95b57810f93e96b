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

package format

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ColorFamily identifies how the planes of a frame are interpreted.
type ColorFamily int

const (
	Undefined ColorFamily = iota
	Gray
	RGB
	YUV
)

// String implements fmt.Stringer.
func (c ColorFamily) String() string {
	switch c {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	case YUV:
		return "yuv"
	default:
		return "undefined"
	}
}

// SampleType tells integer samples from floating-point ones.
type SampleType int

const (
	Integer SampleType = iota
	Float
)

// String implements fmt.Stringer.
func (s SampleType) String() string {
	if s == Float {
		return "float"
	}
	return "integer"
}

// VideoFormat is the per-frame metadata a host hands over with its planes.
type VideoFormat struct {
	ColorFamily    ColorFamily
	SampleType     SampleType
	BitsPerSample  int
	BytesPerSample int // storage width: 1, 2 or 4
	SubSamplingW   int // log2 horizontal chroma subsampling
	SubSamplingH   int // log2 vertical chroma subsampling
	NumPlanes      int
}

// NewVideoFormat derives the storage width (the smallest power of two
// holding bitsPerSample bits) and the plane count (1 for gray, 3 otherwise).
func NewVideoFormat(family ColorFamily, sampleType SampleType, bitsPerSample, subSamplingW, subSamplingH int) VideoFormat {
	bytesPerSample := 1
	for bytesPerSample*8 < bitsPerSample {
		bytesPerSample *= 2
	}
	numPlanes := 3
	if family == Gray {
		numPlanes = 1
	}
	return VideoFormat{
		ColorFamily:    family,
		SampleType:     sampleType,
		BitsPerSample:  bitsPerSample,
		BytesPerSample: bytesPerSample,
		SubSamplingW:   subSamplingW,
		SubSamplingH:   subSamplingH,
		NumPlanes:      numPlanes,
	}
}

// Validate reports formats no host produces: integer depths outside 8..32,
// float depths other than 16 and 32, subsampling on gray or RGB, or more
// than 4x subsampling.
func (f VideoFormat) Validate() error {
	switch f.SampleType {
	case Integer:
		if f.BitsPerSample < 8 || f.BitsPerSample > 32 {
			return fmt.Errorf("unsupported integer depth %d", f.BitsPerSample)
		}
	case Float:
		if f.BitsPerSample != 16 && f.BitsPerSample != 32 {
			return fmt.Errorf("unsupported float depth %d", f.BitsPerSample)
		}
	default:
		return fmt.Errorf("unknown sample type %d", int(f.SampleType))
	}
	if f.SubSamplingW < 0 || f.SubSamplingW > 2 || f.SubSamplingH < 0 || f.SubSamplingH > 2 {
		return fmt.Errorf("unsupported subsampling %d,%d", f.SubSamplingW, f.SubSamplingH)
	}
	if f.ColorFamily != YUV && (f.SubSamplingW != 0 || f.SubSamplingH != 0) {
		return fmt.Errorf("%s formats cannot be subsampled", f.ColorFamily)
	}
	if f.ColorFamily == Undefined {
		return fmt.Errorf("undefined color family")
	}
	return nil
}

// PlaneWidth returns the width in samples of plane for a frame width wide.
// Only the chroma planes of YUV formats are subsampled.
func (f VideoFormat) PlaneWidth(plane, width int) int {
	if plane == 0 || f.ColorFamily != YUV {
		return width
	}
	return width >> f.SubSamplingW
}

// PlaneHeight returns the height in rows of plane for a frame height tall.
func (f VideoFormat) PlaneHeight(plane, height int) int {
	if plane == 0 || f.ColorFamily != YUV {
		return height
	}
	return height >> f.SubSamplingH
}

var subsamplingNames = map[[2]int]string{
	{0, 0}: "444",
	{1, 0}: "422",
	{1, 1}: "420",
	{0, 1}: "440",
	{2, 0}: "411",
	{2, 2}: "410",
}

// Name returns the VapourSynth-style name, e.g. "YUV420P10", "GRAYS", "RGB24".
func (f VideoFormat) Name() string {
	var depth string
	switch {
	case f.SampleType == Float && f.BitsPerSample == 16:
		depth = "H"
	case f.SampleType == Float && f.BitsPerSample == 32:
		depth = "S"
	default:
		depth = fmt.Sprint(f.BitsPerSample)
	}

	switch f.ColorFamily {
	case Gray:
		return "GRAY" + depth
	case RGB:
		if f.SampleType == Integer {
			return fmt.Sprintf("RGB%d", 3*f.BitsPerSample)
		}
		return "RGB" + depth
	case YUV:
		ss, ok := subsamplingNames[[2]int{f.SubSamplingW, f.SubSamplingH}]
		if !ok {
			ss = fmt.Sprintf("%d%d", f.SubSamplingW, f.SubSamplingH)
		}
		return "YUV" + ss + "P" + depth
	default:
		return "NONE"
	}
}

// String implements fmt.Stringer.
func (f VideoFormat) String() string {
	return f.Name()
}

// GrayFormat returns the integer gray format with bits per sample.
func GrayFormat(bits int) VideoFormat {
	return NewVideoFormat(Gray, Integer, bits, 0, 0)
}

// YUV420PFormat returns the integer 4:2:0 format with bits per sample.
func YUV420PFormat(bits int) VideoFormat {
	return NewVideoFormat(YUV, Integer, bits, 1, 1)
}

// YUV444PFormat returns the integer 4:4:4 format with bits per sample.
func YUV444PFormat(bits int) VideoFormat {
	return NewVideoFormat(YUV, Integer, bits, 0, 0)
}

// Common presets.
var (
	GRAY8  = GrayFormat(8)
	GRAY10 = GrayFormat(10)
	GRAY12 = GrayFormat(12)
	GRAY16 = GrayFormat(16)
	GRAY32 = GrayFormat(32)
	GRAYH  = NewVideoFormat(Gray, Float, 16, 0, 0)
	GRAYS  = NewVideoFormat(Gray, Float, 32, 0, 0)

	YUV420P8  = YUV420PFormat(8)
	YUV420P10 = YUV420PFormat(10)
	YUV420P12 = YUV420PFormat(12)
	YUV420P16 = YUV420PFormat(16)
	YUV420PH  = NewVideoFormat(YUV, Float, 16, 1, 1)
	YUV420PS  = NewVideoFormat(YUV, Float, 32, 1, 1)

	YUV422P8  = NewVideoFormat(YUV, Integer, 8, 1, 0)
	YUV422P10 = NewVideoFormat(YUV, Integer, 10, 1, 0)

	YUV444P8  = YUV444PFormat(8)
	YUV444P10 = YUV444PFormat(10)
	YUV444P12 = YUV444PFormat(12)
	YUV444P16 = YUV444PFormat(16)
	YUV444PH  = NewVideoFormat(YUV, Float, 16, 0, 0)
	YUV444PS  = NewVideoFormat(YUV, Float, 32, 0, 0)

	RGB24 = NewVideoFormat(RGB, Integer, 8, 0, 0)
	RGB30 = NewVideoFormat(RGB, Integer, 10, 0, 0)
	RGB48 = NewVideoFormat(RGB, Integer, 16, 0, 0)
	RGBH  = NewVideoFormat(RGB, Float, 16, 0, 0)
	RGBS  = NewVideoFormat(RGB, Float, 32, 0, 0)
)

// Presets returns every named format: gray, 4:2:0 and 4:4:4 at each integer
// depth from 8 to 32, their half and single float variants, the 4:2:2
// presets and the RGB presets.
func Presets() []VideoFormat {
	depths := lo.RangeFrom(8, 25)
	all := lo.Flatten([][]VideoFormat{
		lo.Map(depths, func(bits, _ int) VideoFormat { return GrayFormat(bits) }),
		{GRAYH, GRAYS},
		lo.Map(depths, func(bits, _ int) VideoFormat { return YUV420PFormat(bits) }),
		{YUV420PH, YUV420PS, YUV422P8, YUV422P10},
		lo.Map(depths, func(bits, _ int) VideoFormat { return YUV444PFormat(bits) }),
		{YUV444PH, YUV444PS, RGB24, RGB30, RGB48, RGBH, RGBS},
	})
	return all
}

// ByName finds a preset by its Name, ignoring case.
func ByName(name string) (VideoFormat, bool) {
	return lo.Find(Presets(), func(f VideoFormat) bool {
		return strings.EqualFold(f.Name(), name)
	})
}
