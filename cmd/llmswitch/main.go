// Command llmswitch inspects the provider registry, shows the environment's
// provider selection and sends one-off prompts through the selected client.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/llmswitch/internal/logging"
	"github.com/randalmurphal/llmswitch/internal/settings"
	"github.com/randalmurphal/llmswitch/provider"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.LookupEnv).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all commands. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	lookup     provider.LookupFunc
	configPath string
	output     string
	verbose    bool

	logger   *slog.Logger
	settings *settings.Settings
}

func (a *app) env() provider.LookupFunc {
	if a.settings != nil {
		return a.settings.Lookup(a.lookup)
	}
	return a.lookup
}

// selector returns a provider selector over the environment and settings file.
func (a *app) selector() *provider.Selector {
	return provider.NewSelector(provider.WithLookup(a.env()), provider.WithLogger(a.logger))
}

func newRootCmd(lookup provider.LookupFunc) *cobra.Command {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	a := &app{lookup: lookup}

	root := &cobra.Command{
		Use:   "llmswitch",
		Short: "Inspect and use the configured LLM provider",
		Long: `llmswitch resolves the active LLM provider from the environment.

AI_PROVIDER selects one of openai, anthropic, deepseek, perplexity, minimax
or glm (default deepseek). OPENAI_API_BASE / OPENAI_BASE_URL override the
endpoint, OPENAI_MODEL overrides the model, and the provider's own key
variable (e.g. DEEPSEEK_API_KEY) or OPENAI_API_KEY supplies the credential.

A --config file (YAML or TOML) provides the same values beneath the
environment.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "settings file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", formatTable, "output format: table, json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog:"},
		&cobra.Group{ID: "selection", Title: "Selection:"},
		&cobra.Group{ID: "run", Title: "Run:"},
	)

	for _, c := range []*cobra.Command{providersCmd(a), modelsCmd(a), modelCmd(a), pricesCmd(a), schemaCmd(a)} {
		c.GroupID = "catalog"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{currentCmd(a), featuresCmd(a), watchCmd(a)} {
		c.GroupID = "selection"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{truncateCmd(a), askCmd(a)} {
		c.GroupID = "run"
		root.AddCommand(c)
	}

	return root
}

// init validates global flags, builds the logger and loads the settings file.
func (a *app) init(cmd *cobra.Command) error {
	if !validFormat(a.output) {
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", a.output)
	}

	cfg := logging.FromEnv(func(key string) string {
		v, _ := a.lookup(key)
		return v
	})
	cfg.Output = cmd.ErrOrStderr()
	if a.verbose {
		cfg.Level = slog.LevelDebug
	}
	a.logger = logging.New(cfg)

	if a.configPath == "" {
		return nil
	}
	s, err := settings.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.settings = s
	a.logger.Debug("settings loaded", "path", a.configPath, "keys", s.Keys())
	return nil
}
