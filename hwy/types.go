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

// Package hwy holds the element types shared by the plane and format
// packages, and the CPU dispatch width used to align plane rows.
//
// Sample types are expressed as generic constraints so that a single view
// implementation serves 8-bit, 16-bit, half-float and 32-bit-float planes:
//
//	import "github.com/ajroetker/go-vapours/hwy"
//
//	func sum[T hwy.Lanes](row []T) (s float64) {
//	    for _, v := range row {
//	        s += float64(v)
//	    }
//	    return s
//	}
package hwy

import "unsafe"

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
//
// Float16 has uint16 as its underlying type and therefore satisfies it.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored as plane samples.
// 64-bit members are accepted by the constraint but never match a supported
// plane sample size, so views over them fail at construction.
type Lanes interface {
	Floats | Integers
}

// SizeOf returns the byte width of T.
func SizeOf[T Lanes]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// AlignOf returns the required alignment of T in bytes.
func AlignOf[T Lanes]() int {
	var zero T
	return int(unsafe.Alignof(zero))
}
