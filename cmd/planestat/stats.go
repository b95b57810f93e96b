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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-vapours/hwy"
	"github.com/ajroetker/go-vapours/hwy/contrib/image"
)

type planeStats struct {
	Plane         int
	Width, Height int
	Min, Max      float64
	Mean          float64
	First         float64 // sample at row 0, column 0
}

func newStatsCmd() *cobra.Command {
	var ff frameFlags
	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print per-plane sample statistics of a raw frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := statsFile(args[0], &ff)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range stats {
				fmt.Fprintf(out, "plane %d %dx%d min %g max %g mean %g first %g\n",
					s.Plane, s.Width, s.Height, s.Min, s.Max, s.Mean, s.First)
			}
			return nil
		},
	}
	ff.register(cmd.Flags())
	return cmd
}

func statsFile(path string, ff *frameFlags) (stats []planeStats, err error) {
	fr, err := ff.alloc()
	if err != nil {
		return nil, err
	}
	defer closeFrame(fr, &err)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if want := rawSize(fr); info.Size() != int64(want) {
		return nil, fmt.Errorf("%s holds %d bytes, a %dx%d %s frame needs %d",
			path, info.Size(), ff.width, ff.height, fr.Format().Name(), want)
	}

	dst := fr
	if ff.bottomUp {
		dst = fr.Flipped()
	}
	r := bufio.NewReader(f)

	kind, err := kindOf(fr.Format())
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindUint8:
		stats, err = loadAndMeasure[uint8](r, dst, fr)
	case kindUint16:
		stats, err = loadAndMeasure[uint16](r, dst, fr)
	case kindFloat16:
		stats, err = loadAndMeasure[hwy.Float16](r, dst, fr)
	case kindUint32:
		stats, err = loadAndMeasure[uint32](r, dst, fr)
	case kindFloat32:
		stats, err = loadAndMeasure[float32](r, dst, fr)
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "statsFile",
		"path":     path,
		"format":   fr.Format().Name(),
		"planes":   len(stats),
	}).Info("Measured frame")
	return stats, nil
}

// loadAndMeasure reads r into dst, then measures every plane of fr
// concurrently.
func loadAndMeasure[T hwy.Lanes](r io.Reader, dst, fr *image.HostFrame) ([]planeStats, error) {
	if err := readPlanes[T](r, dst); err != nil {
		return nil, err
	}

	stats := make([]planeStats, fr.NumPlanes())
	var g errgroup.Group
	for i := range stats {
		g.Go(func() error {
			v, err := image.ReadPlane[T](fr, i)
			if err != nil {
				return err
			}
			defer v.Release()
			stats[i] = measure(v)
			stats[i].Plane = i
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func measure[T hwy.Lanes](v *image.View[T]) planeStats {
	s := planeStats{Width: v.Width(), Height: v.Height()}
	if v.Len() == 0 {
		return s
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	sum := 0.0
	for x := range v.All() {
		f := toFloat(x)
		s.Min = min(s.Min, f)
		s.Max = max(s.Max, f)
		sum += f
	}
	s.Mean = sum / float64(v.Len())
	first, _ := v.At(0, 0)
	s.First = toFloat(first)
	return s
}
