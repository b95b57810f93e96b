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

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type borrowMode int

const (
	borrowShared borrowMode = iota
	borrowExclusive
)

func (m borrowMode) String() string {
	if m == borrowExclusive {
		return "write"
	}
	return "read"
}

// borrow is one live view's claim on a byte range.
type borrow struct {
	lo, hi uintptr
	mode   borrowMode
}

func (b *borrow) overlaps(o *borrow) bool {
	return b.lo < o.hi && o.lo < b.hi
}

// registry tracks the byte ranges claimed by live views. Any number of
// read views may share a range; a write view excludes every other view.
//
// Ranges are whole plane extents, so two crops of one plane that sit side
// by side conflict even though their samples are disjoint; crops stacked
// vertically do not.
type registry struct {
	mu   sync.Mutex
	live map[*borrow]struct{}
}

func newRegistry() *registry {
	return &registry{live: make(map[*borrow]struct{})}
}

// views is the process-wide registry. Planes are plain values that any
// caller can build, so exclusivity has to be keyed on addresses rather
// than on descriptor identity.
var views = newRegistry()

func (r *registry) acquire(p Plane, mode borrowMode) (*borrow, error) {
	lo, hi := p.extent()
	b := &borrow{lo: lo, hi: hi, mode: mode}
	if lo == hi {
		// empty planes touch no memory
		return b, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for o := range r.live {
		if !b.overlaps(o) || (mode == borrowShared && o.mode == borrowShared) {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"function":   "registry.acquire",
			"requested":  mode.String(),
			"held":       o.mode.String(),
			"range":      fmt.Sprintf("[%#x, %#x)", lo, hi),
			"held_range": fmt.Sprintf("[%#x, %#x)", o.lo, o.hi),
		}).Warn("Rejected overlapping plane view")
		return nil, fmt.Errorf("%w: %s view over [%#x, %#x) overlaps live %s view over [%#x, %#x)",
			ErrViewConflict, mode, lo, hi, o.mode, o.lo, o.hi)
	}
	r.live[b] = struct{}{}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"function": "registry.acquire",
			"mode":     mode.String(),
			"bytes":    hi - lo,
			"live":     len(r.live),
		}).Debug("Acquired plane view")
	}
	return b, nil
}

func (r *registry) release(b *borrow) {
	if b.lo == b.hi {
		return
	}
	r.mu.Lock()
	delete(r.live, b)
	n := len(r.live)
	r.mu.Unlock()

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"function": "registry.release",
			"mode":     b.mode.String(),
			"live":     n,
		}).Debug("Released plane view")
	}
}

// busy reports whether a live view overlaps p's memory.
func (r *registry) busy(p Plane) bool {
	lo, hi := p.extent()
	if lo == hi {
		return false
	}
	b := &borrow{lo: lo, hi: hi}

	r.mu.Lock()
	defer r.mu.Unlock()
	for o := range r.live {
		if b.overlaps(o) {
			return true
		}
	}
	return false
}

// count returns the number of live non-empty views.
func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
