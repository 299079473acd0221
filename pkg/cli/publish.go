/*
Copyright © 2025 MetricQuest
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/metricquest/pulse/pkg/oci"
	"github.com/metricquest/pulse/pkg/source"
)

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:                  "publish",
		EnableShellCompletion: true,
		Usage:                 "Publish a dataset file as an OCI artifact",
		Description: `Validate a local section dataset and push it to an OCI registry
so servers can load it with an oci:// source.

# Examples

  pulse publish --file data/sections.json --ref oci://ghcr.io/metricquest/sections:v1
  pulse publish --file data/sections.json --ref oci://localhost:5000/pulse/sections --plain-http`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   "data/sections.json",
				Usage:   "Local dataset file to publish",
			},
			&cli.StringFlag{
				Name:     "ref",
				Usage:    "Target OCI reference (oci://registry/repo:tag)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			filePath := cmd.String("file")

			// Validate before pushing; a malformed dataset should fail here,
			// not at server boot.
			records, err := source.LoadSections(ctx, filePath, "")
			if err != nil {
				return err
			}

			ref, err := oci.Parse(cmd.String("ref"))
			if err != nil {
				return err
			}

			// Stage the file alone so the artifact holds exactly one dataset.
			stageDir, err := os.MkdirTemp("", "pulse-publish-")
			if err != nil {
				return fmt.Errorf("failed to create staging directory: %w", err)
			}
			defer func() { _ = os.RemoveAll(stageDir) }()

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read dataset file: %w", err)
			}
			staged := filepath.Join(stageDir, "sections"+filepath.Ext(filePath))
			if err := os.WriteFile(staged, data, 0o600); err != nil {
				return fmt.Errorf("failed to stage dataset file: %w", err)
			}

			digest, err := oci.Push(ctx, oci.PushOptions{
				Reference:   ref,
				SourceDir:   stageDir,
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
				Annotations: map[string]string{
					"quest.metric.pulse.sections": fmt.Sprintf("%d", len(records)),
				},
			})
			if err != nil {
				return err
			}

			slog.Info("dataset published",
				"reference", ref.String(),
				"digest", digest,
				"sections", len(records),
			)
			fmt.Printf("%s@%s\n", ref.ImageReference(), digest)
			return nil
		},
	}
}
