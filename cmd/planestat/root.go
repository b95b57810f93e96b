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
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-vapours/hwy"
)

type rootOptions struct {
	logLevel string
	jsonLogs bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "planestat",
		Short:        "Inspect and generate raw planar video frames",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setupLogging(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "emit logs as JSON")

	cmd.AddCommand(newStatsCmd(), newFormatsCmd(), newFillCmd())
	return cmd
}

func (o *rootOptions) setupLogging(w io.Writer) error {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(w)
	if o.jsonLogs {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	logrus.WithFields(logrus.Fields{
		"function": "setupLogging",
		"dispatch": hwy.CurrentName(),
		"width":    hwy.CurrentWidth(),
	}).Debug("Row alignment selected")
	return nil
}
