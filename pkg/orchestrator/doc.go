// Package orchestrator wires the loader → parser → route mapping → renderer
// pipeline behind a single Generate call, with dependency injection hooks for
// callers that need to swap a stage.
package orchestrator
