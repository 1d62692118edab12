package plugins

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/logging"
)

// Manager manages plugin registration and lifecycle.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
	log     zerolog.Logger
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
		log:     logging.Component("plugins"),
	}
}

// Register adds a plugin. Plugins are loaded and started in registration
// order and closed in reverse.
func (m *Manager) Register(p Plugin) error {
	meta := p.Metadata()
	if meta.ID == "" {
		return fmt.Errorf("register plugin %q: missing id", meta.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.plugins[meta.ID]; ok {
		return fmt.Errorf("register plugin %q: %w", meta.ID, ErrDuplicatePlugin)
	}

	m.plugins[meta.ID] = p
	m.order = append(m.order, meta.ID)

	m.log.Debug().Str("plugin", meta.ID).Str("version", meta.Version).Msg("plugin registered")
	return nil
}

// Get returns a plugin by id, or nil if not found.
func (m *Manager) Get(id string) Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plugins[id]
}

// Plugins returns all registered plugins in registration order.
func (m *Manager) Plugins() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plugins := make([]Plugin, 0, len(m.order))
	for _, id := range m.order {
		plugins = append(plugins, m.plugins[id])
	}
	return plugins
}

// LoadAll loads all registered plugins.
// Errors are logged but do not stop loading of other plugins.
func (m *Manager) LoadAll(ctx context.Context) {
	for _, p := range m.Plugins() {
		id := p.Metadata().ID
		pctx := logging.WithPluginID(ctx, id)
		if err := p.Load(pctx); err != nil {
			m.log.Warn().Ctx(pctx).Err(err).Msg("plugin load failed")
			continue
		}
		m.log.Debug().Ctx(pctx).Msg("plugin loaded")
	}
}

// StartAll starts all registered plugins.
// Errors are logged but do not stop other plugins from starting.
func (m *Manager) StartAll(ctx context.Context) {
	for _, p := range m.Plugins() {
		id := p.Metadata().ID
		pctx := logging.WithPluginID(ctx, id)
		if err := p.Start(pctx); err != nil {
			m.log.Warn().Ctx(pctx).Err(err).Msg("plugin start failed")
			continue
		}
		m.log.Debug().Ctx(pctx).Msg("plugin started")
	}
}

// CloseAll closes all registered plugins in reverse registration order.
func (m *Manager) CloseAll() {
	plugins := m.Plugins()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Close(); err != nil {
			m.log.Warn().Err(err).Str("plugin", p.Metadata().ID).Msg("plugin close failed")
		}
	}
}
