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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-vapours/hwy"
	"github.com/ajroetker/go-vapours/hwy/contrib/format"
	"github.com/ajroetker/go-vapours/hwy/contrib/image"
)

// fillLevels are sample values on the 8-bit limited scale.
type fillLevels struct {
	luma   float32
	chroma float32
	ramp   float32 // added to luma once per row
}

func newFillCmd() *cobra.Command {
	var (
		ff     frameFlags
		levels fillLevels
	)
	cmd := &cobra.Command{
		Use:   "fill FILE",
		Short: "Write a raw frame of constant chroma and a vertical luma ramp",
		Long: `Write a raw frame. Levels are given on the 8-bit limited scale (16 is
black, 235 white, 128 neutral chroma) and converted to the frame format.
RGB and gray planes all take the luma level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fillFile(args[0], &ff, levels)
		},
	}
	ff.register(cmd.Flags())
	cmd.Flags().Float32Var(&levels.luma, "luma", 16, "luma level of the first row")
	cmd.Flags().Float32Var(&levels.chroma, "chroma", 128, "chroma level")
	cmd.Flags().Float32Var(&levels.ramp, "ramp", 0, "luma increment per row")
	return cmd
}

func fillFile(path string, ff *frameFlags, levels fillLevels) (err error) {
	fr, err := ff.alloc()
	if err != nil {
		return err
	}
	defer closeFrame(fr, &err)

	kind, err := kindOf(fr.Format())
	if err != nil {
		return err
	}
	switch kind {
	case kindUint8:
		err = fillPlanes[uint8](fr, levels)
	case kindUint16:
		err = fillPlanes[uint16](fr, levels)
	case kindFloat16:
		err = fillPlanes[hwy.Float16](fr, levels)
	case kindUint32:
		err = fillPlanes[uint32](fr, levels)
	case kindFloat32:
		err = fillPlanes[float32](fr, levels)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)

	src := fr
	if ff.bottomUp {
		src = fr.Flipped()
	}
	switch kind {
	case kindUint8:
		err = writePlanes[uint8](w, src)
	case kindUint16:
		err = writePlanes[uint16](w, src)
	case kindFloat16:
		err = writePlanes[hwy.Float16](w, src)
	case kindUint32:
		err = writePlanes[uint32](w, src)
	case kindFloat32:
		err = writePlanes[float32](w, src)
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":  "fillFile",
		"path":      path,
		"format":    fr.Format().Name(),
		"bottom_up": ff.bottomUp,
		"bytes":     rawSize(fr),
	}).Info("Wrote frame")
	return nil
}

// fillPlanes writes levels into every plane of fr, converted from 8-bit
// limited range to fr's format.
func fillPlanes[T hwy.Lanes](fr *image.HostFrame, levels fillLevels) error {
	vf := fr.Format()
	for i := range fr.NumPlanes() {
		chroma := vf.ColorFamily == format.YUV && i > 0
		if err := fillPlane[T](fr, i, vf, chroma, levels); err != nil {
			return fmt.Errorf("plane %d: %w", i, err)
		}
	}
	return nil
}

func fillPlane[T hwy.Lanes](fr *image.HostFrame, i int, vf format.VideoFormat, chroma bool, levels fillLevels) error {
	w, err := image.WritePlane[T](fr, i)
	if err != nil {
		return err
	}
	defer w.Release()

	sample := func(level float32) T {
		v := format.ScaleValue(level, format.GRAY8, vf, format.WithChroma(chroma))
		return fromFloat[T](v, vf.BitsPerSample)
	}
	if chroma || levels.ramp == 0 {
		level := levels.luma
		if chroma {
			level = levels.chroma
		}
		w.Fill(sample(level))
		return nil
	}
	for y, row := range w.Rows() {
		s := sample(levels.luma + levels.ramp*float32(y))
		for x := range row {
			row[x] = s
		}
	}
	return nil
}
