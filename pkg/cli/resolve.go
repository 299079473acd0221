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

	"github.com/metricquest/pulse/pkg/hints"
	"github.com/metricquest/pulse/pkg/llm"
	"github.com/metricquest/pulse/pkg/resolver"
	"github.com/metricquest/pulse/pkg/section"
	"github.com/metricquest/pulse/pkg/serializer"
	"github.com/metricquest/pulse/pkg/source"
)

// resolveResult is the command output envelope.
type resolveResult struct {
	Query   string         `json:"query" yaml:"query"`
	Key     string         `json:"key" yaml:"key"`
	Section string         `json:"section" yaml:"section"`
	Period  string         `json:"period" yaml:"period"`
	Metrics map[string]any `json:"metrics" yaml:"metrics"`
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "resolve",
		EnableShellCompletion: true,
		Usage:                 "Resolve a free-text query to a section, one shot",
		Description: `Map a free-text query to the closest section key using the
configured LLM provider, then print that section's record. This is the
offline equivalent of POST /ask, useful for prompt and hints tuning.

# Examples

  pulse resolve --q "how is the quarterly ROI trending"
  pulse resolve --q "sales numbers" --provider anthropic --model claude-3-5-haiku-latest`,
		Flags: []cli.Flag{
			sourceFlag,
			kubeconfigFlag,
			outputFlag,
			formatFlag,
			&cli.StringFlag{
				Name:     "q",
				Usage:    "Free-text query to resolve",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "provider",
				Value:   "openai",
				Usage:   "LLM provider (openai, anthropic)",
				Sources: cli.EnvVars("LLM_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "model",
				Usage:   "LLM model identifier (provider default when empty)",
				Sources: cli.EnvVars("LLM_MODEL"),
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Provider API key",
				Sources: cli.EnvVars("OPENAI_API_KEY", "ANTHROPIC_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "hints",
				Usage:   "Path to a YAML file overriding section descriptions",
				Sources: cli.EnvVars("HINTS_PATH"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			client, model, err := buildClient(cmd.String("provider"), cmd.String("model"), cmd.String("api-key"))
			if err != nil {
				return err
			}

			catalog := hints.Default()
			if path := cmd.String("hints"); path != "" {
				if catalog, err = hints.Load(path); err != nil {
					return fmt.Errorf("failed to load hints file: %w", err)
				}
			}

			records, err := source.LoadSections(ctx, cmd.String("source"), cmd.String("kubeconfig"))
			if err != nil {
				return err
			}
			store := section.NewStore(records)

			q := cmd.String("q")
			key, err := resolver.New(client, model, catalog).Resolve(ctx, q, store.Keys())
			if err != nil {
				return fmt.Errorf("failed to resolve %q: %w", q, err)
			}

			rec, ok := store.Lookup(key)
			if !ok {
				return fmt.Errorf("resolved key %q is not in the dataset", key)
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if closer, ok := ser.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			return ser.Serialize(ctx, resolveResult{
				Query:   q,
				Key:     key,
				Section: rec.Section,
				Period:  rec.Period,
				Metrics: rec.Metrics,
			})
		},
	}
}

// buildClient constructs the one-shot completion client for the command.
func buildClient(provider, model, apiKey string) (llm.Client, string, error) {
	if apiKey == "" {
		return nil, "", fmt.Errorf("an API key is required (set --api-key, OPENAI_API_KEY, or ANTHROPIC_API_KEY)")
	}

	switch provider {
	case llm.ProviderOpenAI:
		if model == "" {
			model = llm.DefaultOpenAIModel
		}
		return llm.NewOpenAI(apiKey), model, nil
	case llm.ProviderAnthropic:
		if model == "" {
			model = llm.DefaultAnthropicModel
		}
		return llm.NewAnthropic(apiKey), model, nil
	default:
		return nil, "", fmt.Errorf("unknown provider: %q (supported values: %s, %s)",
			provider, llm.ProviderOpenAI, llm.ProviderAnthropic)
	}
}
