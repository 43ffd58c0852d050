package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/llmswitch/client"
	"github.com/randalmurphal/llmswitch/model"
	"github.com/randalmurphal/llmswitch/truncate"
)

func truncateCmd(a *app) *cobra.Command {
	var (
		maxTokens int
		modelID   string
	)

	cmd := &cobra.Command{
		Use:   "truncate [file]",
		Short: "Truncate text to fit a token limit, keeping the end",
		Long: `Truncate text to fit a token limit, keeping the end.

Reads the file, or stdin when no file is given. Without --max-tokens the
limit is the input budget of --model, or of the selected model.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			t := truncate.New().
				WithSelector(a.selector()).
				WithLogger(a.logger).
				WithModel(modelID)
			result, truncated := t.Truncate(text, maxTokens)
			a.logger.Debug("truncate", "model", t.Model(), "limit", t.Limit(maxTokens), "truncated", truncated)

			_, err = io.WriteString(cmd.OutOrStdout(), result)
			return err
		},
	}

	cmd.Flags().IntVarP(&maxTokens, "max-tokens", "n", 0, "token limit (default: the model's input budget)")
	cmd.Flags().StringVarP(&modelID, "model", "m", "", "model whose budget applies (default: selected model)")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

func askCmd(a *app) *cobra.Command {
	var (
		providerID string
		modelID    string
		system     string
		maxTokens  int
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Send one prompt to the selected (or given) provider",
		Long: `Send one prompt to the selected provider and print the reply.

--provider talks to a specific registered provider at its registry base URL
instead of the environment's selection. The prompt is truncated to the
model's input budget before sending. Use "-" to read the prompt from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := args[0]
			if prompt == "-" {
				var err error
				if prompt, err = readInput(cmd, nil); err != nil {
					return err
				}
			}
			if strings.TrimSpace(prompt) == "" {
				return errors.New("prompt is empty")
			}

			tracker := model.NewCostTracker()
			f := client.NewFactory(
				client.WithSelector(a.selector()),
				client.WithLogger(a.logger),
				client.WithRequestTimeout(timeout),
				client.WithCostTracker(tracker),
			)

			var m *client.ModelHandle
			if providerID != "" {
				var err error
				if m, err = f.FromProvider(providerID, modelID); err != nil {
					return err
				}
			} else {
				m = f.Model(modelID)
			}

			resp, err := m.Complete(cmd.Context(), client.Request{
				SystemPrompt: system,
				Messages:     []client.Message{client.NewTextMessage(client.RoleUser, m.FitContext(prompt))},
				MaxTokens:    maxTokens,
			})
			if err != nil {
				return err
			}

			a.logger.Info("completion",
				"provider", m.Provider(),
				"model", resp.Model,
				"input_tokens", resp.Usage.InputTokens,
				"output_tokens", resp.Usage.OutputTokens,
				"cost_usd", tracker.EstimatedCost(),
				"duration", resp.Duration,
			)

			if a.output == formatTable {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
				return err
			}
			return render(cmd.OutOrStdout(), a.output, resp, nil, nil)
		},
	}

	cmd.Flags().StringVarP(&providerID, "provider", "p", "", "provider to use instead of AI_PROVIDER")
	cmd.Flags().StringVarP(&modelID, "model", "m", "", "model ID (default: provider's default)")
	cmd.Flags().StringVarP(&system, "system", "s", "", "system prompt")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "response token limit (default: provider default)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "request timeout")
	return cmd
}
