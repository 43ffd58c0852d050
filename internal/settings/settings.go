// Package settings loads an optional provider settings file and layers it
// beneath the process environment.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/llmswitch/provider"
)

// ErrUnsupportedFormat is returned for settings files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Settings mirrors the environment variables read by provider.Selector.
// Every field is optional.
type Settings struct {
	// Provider is the registry key of the active provider (AI_PROVIDER).
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" toml:"provider,omitempty" jsonschema:"enum=openai,enum=anthropic,enum=deepseek,enum=perplexity,enum=minimax,enum=glm"`

	// BaseURL overrides the provider's base URL (OPENAI_BASE_URL).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url,omitempty" jsonschema:"format=uri"`

	// Model overrides the provider's default model (OPENAI_MODEL).
	Model string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`

	// APIKeys maps credential variable names to values,
	// e.g. DEEPSEEK_API_KEY or OPENAI_API_KEY.
	APIKeys map[string]string `json:"api_keys,omitempty" yaml:"api_keys,omitempty" toml:"api_keys,omitempty"`
}

// Load reads settings from path. The format is chosen by extension:
// .yaml and .yml are YAML, .toml is TOML.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes settings in the given format ("yaml" or "toml") and
// validates them.
func Parse(data []byte, format string) (*Settings, error) {
	var s Settings
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "toml":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports an unknown provider or malformed credential names.
func (s *Settings) Validate() error {
	var errs []error
	if s.Provider != "" {
		if _, ok := provider.ParseID(s.Provider); !ok {
			errs = append(errs, provider.UnknownProviderError(s.Provider))
		}
	}
	for name := range s.APIKeys {
		if name == "" || strings.ContainsAny(name, " =\t\n") {
			errs = append(errs, fmt.Errorf("invalid api_keys entry %q", name))
		}
	}
	return errors.Join(errs...)
}

// Env returns the settings as environment variables.
func (s *Settings) Env() map[string]string {
	env := make(map[string]string, len(s.APIKeys)+3)
	for k, v := range s.APIKeys {
		env[k] = v
	}
	if s.Provider != "" {
		env[provider.EnvProvider] = s.Provider
	}
	if s.BaseURL != "" {
		env[provider.EnvBaseURL] = s.BaseURL
	}
	if s.Model != "" {
		env[provider.EnvModel] = s.Model
	}
	return env
}

// Keys returns the variable names Env sets, sorted.
func (s *Settings) Keys() []string {
	env := s.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup layers the settings beneath next. A variable that next reports
// with a non-empty value wins; otherwise the settings value is used.
// A nil next is treated as os.LookupEnv.
func (s *Settings) Lookup(next provider.LookupFunc) provider.LookupFunc {
	if next == nil {
		next = os.LookupEnv
	}
	env := s.Env()
	return func(key string) (string, bool) {
		if v, ok := next(key); ok && v != "" {
			return v, true
		}
		if v, ok := env[key]; ok && v != "" {
			return v, true
		}
		return next(key)
	}
}

// Selector returns a provider.Selector reading the environment first and
// these settings second.
func (s *Settings) Selector(opts ...provider.SelectorOption) *provider.Selector {
	opts = append([]provider.SelectorOption{provider.WithLookup(s.Lookup(nil))}, opts...)
	return provider.NewSelector(opts...)
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}
