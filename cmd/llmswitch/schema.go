package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/llmswitch/internal/settings"
	"github.com/randalmurphal/llmswitch/provider"
)

// catalog is the document shape of the provider registry.
type catalog struct {
	Providers []provider.Config `json:"providers" jsonschema:"minItems=1"`
}

var schemaTargets = map[string]func() *jsonschema.Schema{
	"catalog": func() *jsonschema.Schema {
		return reflectSchema(&catalog{}, "Provider catalog")
	},
	"settings": func() *jsonschema.Schema {
		return reflectSchema(&settings.Settings{}, "llmswitch settings file")
	},
}

func reflectSchema(v any, title string) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	s := r.Reflect(v)
	s.Title = title
	return s
}

func schemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "schema [catalog|settings]",
		Short:     "Print the JSON Schema of the provider catalog or the settings file",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"catalog", "settings"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "settings"
			if len(args) == 1 {
				target = args[0]
			}
			build, ok := schemaTargets[target]
			if !ok {
				return fmt.Errorf("unknown schema %q", target)
			}

			data, err := json.MarshalIndent(build(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			if a.output == formatYAML {
				// Round-trip through yaml.Node to keep property order.
				var node yaml.Node
				if err := yaml.Unmarshal(data, &node); err != nil {
					return fmt.Errorf("convert schema: %w", err)
				}
				blockStyle(&node)
				return render(cmd.OutOrStdout(), formatYAML, &node, nil, nil)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

// blockStyle clears the flow and quoting styles JSON input leaves on nodes.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
