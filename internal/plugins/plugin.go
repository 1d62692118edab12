// Package plugins provides the host plugin system: a Plugin contract and a
// Manager that registers plugins and drives their lifecycle.
package plugins

import (
	"context"
	"errors"
)

// ErrDuplicatePlugin is returned by Register when the id is already taken.
var ErrDuplicatePlugin = errors.New("plugin already registered")

// Metadata describes a plugin.
type Metadata struct {
	ID          string
	Name        string
	Description string
	Version     string
	Author      string
}

// Plugin defines the interface for host plugins.
type Plugin interface {
	// Metadata returns the plugin description. ID must be unique.
	Metadata() Metadata

	// Load prepares the plugin. Called once, before any plugin is started.
	Load(ctx context.Context) error

	// Start begins the plugin's work. Called once after every plugin is
	// loaded, so plugins may use each other's APIs here.
	Start(ctx context.Context) error

	// Close releases plugin resources.
	Close() error
}
