package client

import (
	"sync"
)

// Default factory management for applications that want a process-wide
// client. Applications can also manage their own Factory.

var (
	defaultFactory     *Factory
	defaultFactoryOnce sync.Once
	defaultFactoryMu   sync.RWMutex
)

// Default returns the process-wide factory, creating it from the process
// environment on first call. Thread-safe for concurrent access.
//
// Example:
//
//	resp, err := client.Default().Model("").Complete(ctx, req)
func Default() *Factory {
	// Fast path: already initialized
	defaultFactoryMu.RLock()
	if defaultFactory != nil {
		f := defaultFactory
		defaultFactoryMu.RUnlock()
		return f
	}
	defaultFactoryMu.RUnlock()

	defaultFactoryOnce.Do(func() {
		f := NewFactory()
		defaultFactoryMu.Lock()
		defaultFactory = f
		defaultFactoryMu.Unlock()
	})

	defaultFactoryMu.RLock()
	f := defaultFactory
	defaultFactoryMu.RUnlock()
	return f
}

// GetModel returns a handle for the named model on the default factory.
// An empty name resolves to the selected default model.
func GetModel(name string) *ModelHandle {
	return Default().Model(name)
}

// GetModelFromProvider returns a handle on an uncached client for the
// given provider. See Factory.FromProvider.
func GetModelFromProvider(id, modelName string) (*ModelHandle, error) {
	return Default().FromProvider(id, modelName)
}

// SetDefault replaces the process-wide factory.
// Useful for testing or when the application builds its own factory.
//
// Example:
//
//	client.SetDefault(client.NewFactory(client.WithSelector(sel)))
//	defer client.ResetDefault()
func SetDefault(f *Factory) {
	if f == nil {
		panic("SetDefault: factory cannot be nil (use ResetDefault instead)")
	}
	defaultFactoryMu.Lock()
	defer defaultFactoryMu.Unlock()
	defaultFactory = f
	// Mark as initialized so Default won't recreate
	defaultFactoryOnce.Do(func() {})
}

// ResetDefault clears the process-wide factory. The next Default call
// creates a new one from the environment. It is meant for tests and is not
// safe for concurrent use with Default.
func ResetDefault() {
	defaultFactoryMu.Lock()
	defer defaultFactoryMu.Unlock()
	defaultFactory = nil
	defaultFactoryOnce = sync.Once{}
}
