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

import "math"

// ColorRange is the pixel range of integer samples (ITU-T H.265
// equations E-10 through E-20). Float and RGB samples are always Full.
type ColorRange int

const (
	// Full is the PC range, 0-255 in 8 bits.
	Full ColorRange = 0
	// Limited is the studio (TV) range, 16-235 in 8 bits.
	Limited ColorRange = 1
)

// String implements fmt.Stringer.
func (r ColorRange) String() string {
	if r == Limited {
		return "limited"
	}
	return "full"
}

// LowestValue returns the smallest legal sample value.
func (f VideoFormat) LowestValue(chroma bool, r ColorRange) float32 {
	if f.SampleType == Float {
		if chroma {
			return -0.5
		}
		return 0
	}
	if r == Limited {
		return atDepth(16, f.BitsPerSample)
	}
	return 0
}

// NeutralValue returns the midpoint of the integer range, or 0 for floats.
func (f VideoFormat) NeutralValue() float32 {
	if f.SampleType == Float {
		return 0
	}
	return atDepth(128, f.BitsPerSample)
}

// PeakValue returns the largest legal sample value.
func (f VideoFormat) PeakValue(chroma bool, r ColorRange) float32 {
	if f.SampleType == Float {
		if chroma {
			return 0.5
		}
		return 1
	}
	if r == Limited {
		if chroma {
			return atDepth(240, f.BitsPerSample)
		}
		return atDepth(235, f.BitsPerSample)
	}
	return float32(math.Ldexp(1, f.BitsPerSample) - 1)
}

// atDepth returns the 8-bit level v at a depth of bits, v << (bits-8).
// Depths below 8 bits scale down instead of failing on a negative shift.
func atDepth(v float64, bits int) float32 {
	return float32(math.Ldexp(v, bits-8))
}

type scaleOptions struct {
	rangeIn, rangeOut ColorRange
	rangeOutSet       bool
	scaleOffsets      bool
	scaleOffsetsSet   bool
	chroma            bool
}

// ScaleOption adjusts ScaleValue.
type ScaleOption func(*scaleOptions)

// WithRangeIn sets the range of the input value. Default Limited; ignored
// for float input.
func WithRangeIn(r ColorRange) ScaleOption {
	return func(o *scaleOptions) { o.rangeIn = r }
}

// WithRangeOut sets the range of the result. Defaults to the input range;
// ignored for float output.
func WithRangeOut(r ColorRange) ScaleOption {
	return func(o *scaleOptions) {
		o.rangeOut = r
		o.rangeOutSet = true
	}
}

// WithScaleOffsets forces whether range offsets are applied. By default
// they are applied exactly when the input and output ranges differ.
func WithScaleOffsets(b bool) ScaleOption {
	return func(o *scaleOptions) {
		o.scaleOffsets = b
		o.scaleOffsetsSet = true
	}
}

// WithChroma treats the value as a chroma sample.
func WithChroma(b bool) ScaleOption {
	return func(o *scaleOptions) { o.chroma = b }
}

// ScaleValue converts value from the bit depth and range of in to those of
// out, e.g. 8-bit limited 235 becomes 940 in 10 bits and 1.0 in float.
func ScaleValue(value float32, in, out VideoFormat, opts ...ScaleOption) float32 {
	o := scaleOptions{rangeIn: Limited}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.rangeOutSet {
		o.rangeOut = o.rangeIn
	}
	if in.SampleType == Float {
		o.rangeIn = Full
	}
	if out.SampleType == Float {
		o.rangeOut = Full
	}

	if in.BitsPerSample == out.BitsPerSample && o.rangeIn == o.rangeOut {
		return value
	}
	if !o.scaleOffsetsSet {
		o.scaleOffsets = o.rangeIn != o.rangeOut
	}

	inPeak := in.PeakValue(o.chroma, o.rangeIn)
	inLowest := in.LowestValue(o.chroma, o.rangeIn)
	outPeak := out.PeakValue(o.chroma, o.rangeOut)
	outLowest := out.LowestValue(o.chroma, o.rangeOut)

	// Remove the input offset so that scaling happens around zero.
	if o.scaleOffsets {
		if out.SampleType == Float && o.chroma {
			value -= atDepth(128, in.BitsPerSample)
		} else if o.rangeOut == Full && o.rangeIn == Limited {
			value -= atDepth(16, in.BitsPerSample)
		}
	}

	value *= (outPeak - outLowest) / (inPeak - inLowest)

	// Re-apply the output offset.
	if o.scaleOffsets {
		if in.SampleType == Float && o.chroma {
			value += atDepth(128, out.BitsPerSample)
		} else if o.rangeIn == Full && o.rangeOut == Limited {
			value += atDepth(16, out.BitsPerSample)
		}
	}
	return value
}
