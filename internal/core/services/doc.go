// Package services implements the driving port interfaces.
// Services hold the export pipeline: the pure transformers that turn raw
// rows into archive rows, and the orchestrator that drives the raw store
// and archive adapters through driven ports.
package services
