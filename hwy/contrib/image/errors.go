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

import "errors"

// Sentinel errors for plane and view operations.
// Classify them with errors.Is; returned errors wrap them with the
// offending geometry.

// Construction errors.
var (
	// ErrInvalidGeometry indicates negative dimensions, an unsupported sample
	// size, overlapping rows, a nil base for a non-empty plane, or memory
	// that is misaligned for the requested sample type.
	ErrInvalidGeometry = errors.New("invalid plane geometry")

	// ErrSampleSizeMismatch indicates a view was requested with a sample type
	// whose byte width differs from the plane's sample size.
	ErrSampleSizeMismatch = errors.New("sample size mismatch")

	// ErrGeometryOverflow indicates address arithmetic over the plane would
	// overflow int or the address space.
	ErrGeometryOverflow = errors.New("plane geometry overflow")
)

// Access errors.
var (
	// ErrOutOfBounds indicates a coordinate outside [0,width) x [0,height),
	// or a buffer too small for the requested rows.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrPlaneIndexOutOfRange indicates a plane index >= the frame's plane count.
	ErrPlaneIndexOutOfRange = errors.New("plane index out of range")
)

// Borrow errors.
var (
	// ErrViewConflict indicates a view overlapping a live write view, or a
	// write view overlapping any live view.
	ErrViewConflict = errors.New("overlapping view is still alive")

	// ErrViewReleased is the panic value for any use of a released view.
	ErrViewReleased = errors.New("view used after release")
)
