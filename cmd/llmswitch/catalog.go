package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/llmswitch/provider"
)

func providersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := a.selector()
			current := sel.CurrentProviderID()

			configs := provider.List()
			rows := make([][]string, 0, len(configs))
			for _, c := range configs {
				id := string(c.ID)
				if c.ID == current {
					id += " *"
				}
				rows = append(rows, []string{
					id,
					c.Name,
					c.BaseURL,
					c.DefaultModel,
					wireFamily(c),
					yesNo(c.SupportsVision),
					yesNo(c.SupportsWebSearch),
					credentialStatus(c.APIKeyEnv, sel.CredentialFor(c) != ""),
				})
			}
			return render(cmd.OutOrStdout(), a.output, configs,
				[]string{"ID", "Name", "Base URL", "Default model", "Wire", "Vision", "Web search", "Credential"},
				rows)
		},
	}
}

// modelRow is the structured form of one model listing entry.
type modelRow struct {
	Provider provider.ID `json:"provider" yaml:"provider"`

	provider.Model `yaml:",inline"`

	MaxInputTokens int  `json:"max_input_tokens" yaml:"max_input_tokens"`
	Default        bool `json:"default" yaml:"default"`
}

func modelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models [provider]",
		Short: "List models, for one provider or all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configs := provider.List()
			if len(args) == 1 {
				id, ok := provider.ParseID(args[0])
				if !ok {
					return provider.UnknownProviderError(args[0])
				}
				configs = []provider.Config{provider.MustLookup(id)}
			}

			var items []modelRow
			var rows [][]string
			for _, c := range configs {
				for _, m := range c.Models {
					item := modelRow{
						Provider:       c.ID,
						Model:          m,
						MaxInputTokens: m.MaxInputTokens(),
						Default:        m.ID == c.DefaultModel,
					}
					items = append(items, item)

					id := m.ID
					if item.Default {
						id += " *"
					}
					rows = append(rows, []string{
						string(c.ID),
						id,
						tokenCount(m.ContextWindow),
						tokenCount(m.MaxOutputTokens),
						tokenCount(item.MaxInputTokens),
						price(m.InputPricePerMillion),
						price(m.OutputPricePerMillion),
						optionalPrice(m.CacheHitPricePerMillion),
					})
				}
			}
			return render(cmd.OutOrStdout(), a.output, items,
				[]string{"Provider", "Model", "Context", "Max output", "Max input", "Input $/M", "Output $/M", "Cache $/M"},
				rows)
		},
	}
}

func modelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model <id>",
		Short: "Show one model and its token budget",
		Long: `Show one model and its token budget.

Unknown model IDs are reported as an error; the truncation budget for an
unknown model falls back to 100000 input tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := provider.ProviderForModel(args[0])
			if !ok {
				return provider.NewError("", "model", fmt.Errorf("%w: %q", provider.ErrUnknownModel, args[0]))
			}
			m, _ := c.Model(args[0])

			item := modelRow{
				Provider:       c.ID,
				Model:          m,
				MaxInputTokens: m.MaxInputTokens(),
				Default:        m.ID == c.DefaultModel,
			}
			rows := keyValueRows(
				"Provider", c.Name,
				"ID", m.ID,
				"Name", m.Name,
				"Context window", tokenCount(m.ContextWindow),
				"Max output tokens", tokenCount(m.MaxOutputTokens),
				"Max input tokens", tokenCount(item.MaxInputTokens),
				"Input $/M", price(m.InputPricePerMillion),
				"Output $/M", price(m.OutputPricePerMillion),
				"Cache hit $/M", optionalPrice(m.CacheHitPricePerMillion),
				"Vision", yesNo(m.SupportsVision),
				"Reasoning", yesNo(m.SupportsReasoning),
				"Provider default", yesNo(item.Default),
			)
			return render(cmd.OutOrStdout(), a.output, item, []string{"Field", "Value"}, rows)
		},
	}
}

func pricesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Compare model prices across providers, cheapest input first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priceRows := provider.PriceComparison()
			rows := make([][]string, 0, len(priceRows))
			for _, r := range priceRows {
				rows = append(rows, []string{
					r.Provider,
					r.ModelID,
					price(r.InputPrice),
					price(r.OutputPrice),
					optionalPrice(r.CachePrice),
				})
			}
			return render(cmd.OutOrStdout(), a.output, priceRows,
				[]string{"Provider", "Model", "Input $/M", "Output $/M", "Cache $/M"},
				rows)
		},
	}
}

func wireFamily(c provider.Config) string {
	if c.OpenAICompatible {
		return "openai"
	}
	return "native"
}
