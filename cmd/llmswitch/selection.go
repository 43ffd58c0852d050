package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/llmswitch/internal/settings"
	"github.com/randalmurphal/llmswitch/provider"
)

func currentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the provider, endpoint and model the environment selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderSelection(cmd.OutOrStdout(), a.selector())
		},
	}
}

func (a *app) renderSelection(w io.Writer, sel *provider.Selector) error {
	s := sel.Resolve()

	features := make([]string, len(s.Features))
	for i, f := range s.Features {
		features[i] = string(f)
	}
	baseURL := s.BaseURL
	if s.BaseURLOverridden {
		baseURL += " (override)"
	}

	rows := keyValueRows(
		"Provider", fmt.Sprintf("%s (%s)", s.ProviderName, s.Provider),
		"Base URL", baseURL,
		"Model", s.Model,
		"Max input tokens", strconv.Itoa(s.MaxInputTokens),
		"Credential", credentialStatus(s.APIKeyEnv, s.HasAPIKey),
		"Features", strings.Join(features, ", "),
	)
	return render(w, a.output, s, []string{"Setting", "Value"}, rows)
}

// featureRow reports one feature's support.
type featureRow struct {
	Feature   provider.Feature `json:"feature" yaml:"feature"`
	Supported bool             `json:"supported" yaml:"supported"`
}

func featuresCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "features [feature]",
		Short: "Show which features the selected provider supports",
		Long: `Show which features the selected provider supports.

With an argument (vision, webSearch or reasoning) only that feature is
reported; the command fails for unknown feature names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			features := provider.Features()
			if len(args) == 1 {
				f, ok := provider.ParseFeature(args[0])
				if !ok {
					return fmt.Errorf("unknown feature %q", args[0])
				}
				features = []provider.Feature{f}
			}

			sel := a.selector()
			items := make([]featureRow, 0, len(features))
			rows := make([][]string, 0, len(features))
			for _, f := range features {
				ok := sel.SupportsFeature(f)
				items = append(items, featureRow{Feature: f, Supported: ok})
				rows = append(rows, []string{string(f), yesNo(ok)})
			}
			return render(cmd.OutOrStdout(), a.output, items, []string{"Feature", "Supported"}, rows)
		},
	}
}

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the selection each time the --config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configPath == "" {
				return errors.New("watch requires --config")
			}
			out := cmd.OutOrStdout()
			if err := a.renderSelection(out, a.selector()); err != nil {
				return err
			}

			err := settings.Watch(cmd.Context(), a.configPath, func(s *settings.Settings, err error) {
				if err != nil {
					a.logger.Warn("settings reload failed", "path", a.configPath, "error", err)
					return
				}
				a.settings = s
				a.logger.Info("settings reloaded", "path", a.configPath)
				if err := a.renderSelection(out, a.selector()); err != nil {
					a.logger.Error("render selection", "error", err)
				}
			})
			if errors.Is(err, cmd.Context().Err()) {
				return nil
			}
			return err
		},
	}
}
