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

// Package image gives safe, typed access to the planes of video frames
// whose memory belongs to a host.
//
// A Plane records where a plane lives (base address, signed stride in
// bytes, width and height in samples, sample size). Views reinterpret that
// memory as samples of a Go type without copying:
//
//	v, err := image.ReadPlane[uint16](frame, 0)
//	if err != nil {
//	    return err
//	}
//	defer v.Release()
//	for s := range v.All() { // row-major, stride padding skipped
//	    ...
//	}
//
// # Read and write views
//
// View is a read view and MutView a write view. Any number of read views
// may cover the same bytes, but a write view is exclusive: while it is live,
// building another view over overlapping memory fails with
// ErrViewConflict. Release ends a view; using it afterwards panics.
//
// # Checked and unchecked access
//
// At, Ptr, Set and Row validate coordinates and return ErrOutOfBounds.
// UnsafeAt and UnsafeSet skip the check for inner loops whose bounds are
// already established.
//
// # Edge Handling
//
// Coordinate helpers for filters that read past the plane edges:
//
//	Mirror(index, size) - reflect at boundaries
//	Clamp(index, size)  - repeat edge pixels
//	Wrap(index, size)   - tile/wrap around
package image
