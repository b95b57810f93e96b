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

package hwy

import "math"

// Float16 is an IEEE 754 binary16 sample, the storage type of half-float
// planes (GRAYH, YUV420PH, RGBH). It is stored as its raw bits so a plane
// of half floats can be viewed as []Float16 without conversion.
//
//	S | EEEEE | MMMMMMMMMM
type Float16 uint16

const (
	Float16Zero     Float16 = 0x0000
	Float16NegZero  Float16 = 0x8000
	Float16One      Float16 = 0x3C00
	Float16NegOne   Float16 = 0xBC00
	Float16Half     Float16 = 0x3800 // 0.5, the chroma peak of float formats
	Float16NegHalf  Float16 = 0xB800
	Float16MaxValue Float16 = 0x7BFF // 65504
	Float16Inf      Float16 = 0x7C00
	Float16NegInf   Float16 = 0xFC00
	Float16NaN      Float16 = 0x7E00

	f16ExpMask  = 0x1F
	f16MantMask = 0x3FF
	f16SignMask = 0x8000
	// f32 exponent bias minus f16 exponent bias
	f16Rebias = 127 - 15
)

// Float16ToFloat32 widens h exactly. NaN payloads are preserved.
func Float16ToFloat32(h Float16) float32 {
	sign := uint32(h&f16SignMask) << 16
	exp := uint32(h>>10) & f16ExpMask
	mant := uint32(h) & f16MantMask

	switch exp {
	case 0:
		// zero or subnormal: mant * 2^-24, exact in float32
		v := float32(mant) * (1.0 / (1 << 24))
		return math.Float32frombits(sign | math.Float32bits(v))
	case f16ExpMask:
		return math.Float32frombits(sign | 0x7F800000 | mant<<13)
	default:
		return math.Float32frombits(sign | (exp+f16Rebias)<<23 | mant<<13)
	}
}

// Float32ToFloat16 narrows f with round-to-nearest-even. Values beyond the
// half range become infinities and values below half the smallest
// subnormal become signed zeros.
func Float32ToFloat16(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := uint32(bits>>16) & f16SignMask
	exp := int(bits>>23) & 0xFF
	mant := bits & 0x7FFFFF

	if exp == 0xFF {
		if mant != 0 {
			return Float16(sign | 0x7E00 | mant>>13)
		}
		return Float16(sign | 0x7C00)
	}

	e := exp - f16Rebias
	switch {
	case e >= f16ExpMask:
		return Float16(sign | 0x7C00)
	case e <= 0:
		if e < -10 {
			return Float16(sign)
		}
		m := mant | 0x800000
		shift := uint(14 - e)
		h := m >> shift
		halfway := uint32(1) << (shift - 1)
		if m&halfway != 0 && (m&(halfway-1) != 0 || h&1 != 0) {
			// a carry out of the subnormal range lands on the smallest normal
			h++
		}
		return Float16(sign | h)
	}

	h := uint32(e)<<10 | mant>>13
	if mant&0x1000 != 0 && (mant&0xFFF != 0 || h&1 != 0) {
		// carry may ripple into the exponent, up to infinity
		h++
	}
	return Float16(sign | h)
}

// NewFloat16 converts f to the nearest Float16.
func NewFloat16(f float32) Float16 {
	return Float32ToFloat16(f)
}

// Float16FromBits reinterprets raw bits as a Float16.
func Float16FromBits(bits uint16) Float16 {
	return Float16(bits)
}

// Bits returns the raw binary16 encoding.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

// Float32 widens h.
func (h Float16) Float32() float32 {
	return Float16ToFloat32(h)
}

// IsNaN reports whether h is a NaN.
func (h Float16) IsNaN() bool {
	return (h>>10)&f16ExpMask == f16ExpMask && h&f16MantMask != 0
}

// IsInf reports whether h is an infinity of either sign.
func (h Float16) IsInf() bool {
	return (h>>10)&f16ExpMask == f16ExpMask && h&f16MantMask == 0
}

// IsNegative reports whether the sign bit is set.
func (h Float16) IsNegative() bool {
	return h&f16SignMask != 0
}
