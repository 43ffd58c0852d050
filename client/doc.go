// Package client constructs vendor SDK clients for the selected provider.
//
// Two wire families are supported. Anthropic is served by the native
// anthropic-sdk-go client; every other provider is reached through
// openai-go pointed at the provider's OpenAI-compatible base URL.
//
// # Factory
//
// A Factory resolves everything from a provider.Selector and builds the
// client once, on first use:
//
//	f := client.NewFactory()
//	m := f.Model("")            // selector's default model
//	resp, err := m.Complete(ctx, client.Request{
//	    Messages: []client.Message{client.NewTextMessage(client.RoleUser, "hi")},
//	})
//
// FromProvider bypasses the cached client to talk to a specific provider,
// for example when comparing answers across vendors:
//
//	m, err := f.FromProvider("glm", "glm-4-air")
//
// # Default Factory
//
// GetModel and GetModelFromProvider use a process-wide factory built from
// the environment. Tests can swap it with SetDefault and ResetDefault.
//
// # Failure Modes
//
// A missing credential or base URL is logged at warn level and the client
// is built anyway; the provider rejects the request. Unknown provider IDs
// passed to FromProvider return an error wrapping
// provider.ErrUnknownProvider. SDK retries are disabled.
package client
