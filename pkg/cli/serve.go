/*
Copyright © 2025 MetricQuest
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/metricquest/pulse/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the section lookup HTTP server",
		Description: `Run the pulse daemon: load the section dataset, index it by
normalized section name, and serve the lookup API.

Endpoints:
  GET  /                   greeting plus the default section
  GET  /metrics?section=k  exact key lookup
  GET  /metrics?q=text     free-text lookup (requires an LLM provider key)
  GET  /metrics/{section}  exact key lookup, path form
  POST /ask                free-text lookup, JSON body {"q": "..."}
  GET  /healthz, /readyz   probes

The dataset source supports file paths, HTTP URLs, ConfigMap URIs
(cm://namespace/name), and OCI references (oci://registry/repo:tag).`,
		Flags: []cli.Flag{
			sourceFlag,
			kubeconfigFlag,
			&cli.StringFlag{
				Name:    "default-section",
				Value:   "overview_core",
				Usage:   "Section key served by GET /",
				Sources: cli.EnvVars("DEFAULT_SECTION"),
			},
			&cli.StringFlag{
				Name:    "greeting",
				Usage:   "Greeting message attached to the default section",
				Sources: cli.EnvVars("DEFAULT_GREETING"),
			},
			&cli.StringFlag{
				Name:    "provider",
				Value:   "openai",
				Usage:   "LLM provider for free-text resolution (openai, anthropic)",
				Sources: cli.EnvVars("LLM_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "model",
				Usage:   "LLM model identifier (provider default when empty)",
				Sources: cli.EnvVars("LLM_MODEL"),
			},
			&cli.StringFlag{
				Name:    "hints",
				Usage:   "Path to a YAML file overriding section descriptions used in resolution prompts",
				Sources: cli.EnvVars("HINTS_PATH"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := api.NewConfig()
			cfg.DataSource = cmd.String("source")
			cfg.Kubeconfig = cmd.String("kubeconfig")
			cfg.DefaultSection = cmd.String("default-section")
			cfg.LLMProvider = cmd.String("provider")
			cfg.HintsPath = cmd.String("hints")
			if g := cmd.String("greeting"); g != "" {
				cfg.DefaultGreeting = g
			}
			if m := cmd.String("model"); m != "" {
				cfg.LLMModel = m
			}

			return api.ServeWithConfig(ctx, cfg)
		},
	}
}
