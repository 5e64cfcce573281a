// Package io provides input/output utilities for tabular data ingestion.
package io

import "time"

// Reader is the interface for reading tabular datasets from various sources.
type Reader interface {
	// Read returns the complete dataset.
	Read() (*Table, error)

	// Close releases resources.
	Close() error
}

// Writer is the interface for writing analysis results.
type Writer interface {
	// Write outputs a single result.
	Write(result Result) error

	// WriteAll outputs multiple results.
	WriteAll(results []Result) error

	// Close releases resources.
	Close() error
}

// Result represents a persisted fairness analysis outcome.
type Result struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Kind      string         `json:"kind"`
	Attribute string         `json:"attribute,omitempty"`
	Passed    bool           `json:"passed"`
	Metrics   Metrics        `json:"metrics,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
