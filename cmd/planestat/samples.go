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
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ajroetker/go-vapours/hwy"
	"github.com/ajroetker/go-vapours/hwy/contrib/format"
	"github.com/ajroetker/go-vapours/hwy/contrib/image"
)

// Raw frames are little-endian whatever the host order.
var rawOrder = binary.LittleEndian

// readPlanes fills every plane of fr from r, row by row.
func readPlanes[T hwy.Lanes](r io.Reader, fr *image.HostFrame) error {
	for i := range fr.NumPlanes() {
		w, err := image.WritePlane[T](fr, i)
		if err != nil {
			return err
		}
		for y, row := range w.Rows() {
			if err := binary.Read(r, rawOrder, row); err != nil {
				w.Release()
				return fmt.Errorf("plane %d row %d: %w", i, y, err)
			}
		}
		w.Release()
	}
	return nil
}

// writePlanes stores every plane of fr to w without row padding.
func writePlanes[T hwy.Lanes](w io.Writer, fr *image.HostFrame) error {
	for i := range fr.NumPlanes() {
		v, err := image.ReadPlane[T](fr, i)
		if err != nil {
			return err
		}
		buf := make([]T, v.Width())
		for y, row := range v.Rows() {
			row.CopyTo(buf)
			if err := binary.Write(w, rawOrder, buf); err != nil {
				v.Release()
				return fmt.Errorf("plane %d row %d: %w", i, y, err)
			}
		}
		v.Release()
	}
	return nil
}

// toFloat returns the numeric value of a sample.
func toFloat[T hwy.Lanes](v T) float64 {
	if h, ok := any(v).(hwy.Float16); ok {
		return float64(h.Float32())
	}
	return float64(v)
}

// fromFloat converts v to a sample of T, rounding and clamping integers to
// the legal range of bits.
func fromFloat[T hwy.Lanes](v float32, bits int) T {
	var zero T
	switch any(zero).(type) {
	case hwy.Float16:
		return T(hwy.NewFloat16(v))
	case float32, float64:
		return T(v)
	}
	peak := math.Ldexp(1, bits) - 1
	return T(math.Round(min(max(float64(v), 0), peak)))
}

// sampleKind is the Go type a format's samples are viewed as.
type sampleKind int

const (
	kindUint8 sampleKind = iota
	kindUint16
	kindFloat16
	kindUint32
	kindFloat32
)

func kindOf(vf format.VideoFormat) (sampleKind, error) {
	float := vf.SampleType == format.Float
	switch {
	case vf.BytesPerSample == 1 && !float:
		return kindUint8, nil
	case vf.BytesPerSample == 2 && float:
		return kindFloat16, nil
	case vf.BytesPerSample == 2:
		return kindUint16, nil
	case vf.BytesPerSample == 4 && float:
		return kindFloat32, nil
	case vf.BytesPerSample == 4:
		return kindUint32, nil
	}
	return 0, fmt.Errorf("%s: no sample type for %d-byte %s samples", vf.Name(), vf.BytesPerSample, vf.SampleType)
}
