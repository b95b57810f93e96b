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

// Package format describes video sample formats: how many planes a frame
// has, how wide each sample is, how chroma is subsampled, and what range of
// values a sample may hold.
//
// The presets mirror the VapourSynth format constants:
//
//	format.GRAY8      // 1 plane, 8-bit integer
//	format.YUV420P10  // 3 planes, 10 bits stored in 2 bytes, 4:2:0
//	format.RGBS       // 3 planes, 32-bit float
//
// Bit-depth conversion of single values is provided by ScaleValue:
//
//	v := format.ScaleValue(235, format.YUV420P8, format.YUV420P10) // 940
package format
