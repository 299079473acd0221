/*
Copyright © 2025 MetricQuest
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/metricquest/pulse/pkg/section"
	"github.com/metricquest/pulse/pkg/serializer"
	"github.com/metricquest/pulse/pkg/source"
)

func sectionsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "sections",
		EnableShellCompletion: true,
		Usage:                 "List sections from a dataset source",
		Description: `Load a section dataset and print its records, or just the
normalized keys with --keys.

The output can be written to stdout, a file, or a ConfigMap URI
(cm://namespace/name), in JSON, YAML, or table format. Writing to a
ConfigMap is how a dataset is staged for servers configured with a
cm:// source.

# Examples

List keys from the default local dataset:
  pulse sections --keys

Re-publish a local dataset into a ConfigMap:
  pulse sections --source data/sections.json --output cm://pulse/sections --format yaml`,
		Flags: []cli.Flag{
			sourceFlag,
			kubeconfigFlag,
			outputFlag,
			formatFlag,
			&cli.BoolFlag{
				Name:  "keys",
				Usage: "Print only the sorted normalized section keys",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			records, err := source.LoadSections(ctx, cmd.String("source"), cmd.String("kubeconfig"))
			if err != nil {
				return err
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			if cmd.Bool("keys") {
				return ser.Serialize(ctx, section.NewStore(records).Keys())
			}
			return ser.Serialize(ctx, records)
		},
	}
}
