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

import (
	"math"
	"testing"
)

func TestFloat16Constants(t *testing.T) {
	tests := []struct {
		name     string
		value    Float16
		expected float32
	}{
		{"Zero", Float16Zero, 0.0},
		{"One", Float16One, 1.0},
		{"NegOne", Float16NegOne, -1.0},
		{"Half", Float16Half, 0.5},
		{"NegHalf", Float16NegHalf, -0.5},
		{"Max", Float16MaxValue, 65504},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Float16ToFloat32(tt.value)
			if got != tt.expected {
				t.Errorf("Float16%s: got %v, want %v", tt.name, got, tt.expected)
			}
		})
	}

	if !Float16Inf.IsInf() || Float16Inf.IsNegative() {
		t.Error("Float16Inf should be positive infinity")
	}
	if !Float16NegInf.IsInf() || !Float16NegInf.IsNegative() {
		t.Error("Float16NegInf should be negative infinity")
	}
	if !Float16NaN.IsNaN() {
		t.Error("Float16NaN should be NaN")
	}
	if got := Float16ToFloat32(Float16NegZero); got != 0 || !math.Signbit(float64(got)) {
		t.Errorf("Float16NegZero: got %v, want -0", got)
	}
}

func TestFloat32ToFloat16Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want Float16
	}{
		{"exact one", 1.0, 0x3C00},
		{"tie rounds to even", 1 + 1.0/2048, 0x3C00},
		{"tie rounds up to even", 1 + 3.0/2048, 0x3C02},
		{"above tie", 1 + 1.0/2048 + 1.0/8192, 0x3C01},
		{"max finite", 65504, 0x7BFF},
		{"tie overflows to inf", 65520, 0x7C00},
		{"overflow", 1e6, 0x7C00},
		{"negative overflow", -1e6, 0xFC00},
		{"smallest subnormal", float32(math.Ldexp(1, -24)), 0x0001},
		{"half of smallest subnormal", float32(math.Ldexp(1, -25)), 0x0000},
		{"above half of smallest subnormal", float32(math.Ldexp(3, -26)), 0x0001},
		{"largest subnormal", float32(math.Ldexp(1023, -24)), 0x03FF},
		{"subnormal carries to normal", float32(math.Ldexp(2047, -25)), 0x0400},
		{"underflow", 1e-10, 0x0000},
		{"negative zero", float32(math.Copysign(0, -1)), 0x8000},
		{"inf", float32(math.Inf(1)), 0x7C00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float32ToFloat16(tt.in); got != tt.want {
				t.Errorf("Float32ToFloat16(%v): got %#04x, want %#04x", tt.in, uint16(got), uint16(tt.want))
			}
		})
	}

	if !Float32ToFloat16(float32(math.NaN())).IsNaN() {
		t.Error("NaN should stay NaN")
	}
}

// Every finite half survives a trip through float32.
func TestFloat16RoundTrip(t *testing.T) {
	for bits := 0; bits <= 0xFFFF; bits++ {
		h := Float16FromBits(uint16(bits))
		if h.IsNaN() {
			continue
		}
		if got := NewFloat16(h.Float32()); got != h {
			t.Fatalf("round trip %#04x: got %#04x", bits, got.Bits())
		}
	}
}
