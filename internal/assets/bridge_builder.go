package assets

import "github.com/Carmen-Shannon/oxy-waddle/engine/scene"

// BridgeBuilderOption configures a Bridge.
type BridgeBuilderOption func(*Bridge)

// WithOnPrimary is an option builder that registers a callback run once the penguin is in
// the scene, before Ready resolves.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - BridgeBuilderOption: a function that applies the callback to a Bridge
func WithOnPrimary(fn func(*scene.Node)) BridgeBuilderOption {
	return func(b *Bridge) {
		b.onPrimary = fn
	}
}

// WithLogf is an option builder that replaces log.Printf for load failures.
//
// Parameters:
//   - logf: the logging function
//
// Returns:
//   - BridgeBuilderOption: a function that applies the logger to a Bridge
func WithLogf(logf func(format string, args ...any)) BridgeBuilderOption {
	return func(b *Bridge) {
		if logf != nil {
			b.logf = logf
		}
	}
}
