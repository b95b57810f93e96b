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

// Command planestat inspects and generates raw planar video frames through
// checked plane views.
//
// A raw frame is every plane of the format stored back to back, rows
// unpadded, samples little-endian. Usage:
//
//	planestat formats --family yuv
//	planestat fill out.yuv --format YUV420P10 --width 1920 --height 1080 --luma 235
//	planestat stats out.yuv --format YUV420P10 --width 1920 --height 1080
//
// Pass --bottom-up for files whose rows are stored last row first, and
// --mmap to place the frame in memory mapped outside the Go heap.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
