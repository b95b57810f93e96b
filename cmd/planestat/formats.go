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
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-vapours/hwy/contrib/format"
)

func newFormatsCmd() *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the known frame formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats := format.Presets()
			if family != "" {
				formats = lo.Filter(formats, func(f format.VideoFormat, _ int) bool {
					return strings.EqualFold(f.ColorFamily.String(), family)
				})
				if len(formats) == 0 {
					return fmt.Errorf("no formats in color family %q", family)
				}
			}
			lines := lo.Map(formats, func(f format.VideoFormat, _ int) string {
				return fmt.Sprintf("%-12s %-5s %-7s %2d bits %d bytes %d planes 1/%dx1/%d",
					f.Name(), f.ColorFamily, f.SampleType, f.BitsPerSample, f.BytesPerSample,
					f.NumPlanes, 1<<f.SubSamplingW, 1<<f.SubSamplingH)
			})
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list one color family (gray, rgb, yuv)")
	return cmd
}
