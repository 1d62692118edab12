// Package notifications provides the notification API plugin. It owns the
// notify.Manager other plugins talk to and reports the host's global
// errors as notifications.
package notifications

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/config"
	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/internal/core/logging"
	"github.com/hay-kot/toasts/internal/core/notify"
	"github.com/hay-kot/toasts/internal/plugins"
)

const ID = "notification-api"

// component tags this plugin's log lines.
const component = "notifications"

// Plugin implements the notification API plugin.
type Plugin struct {
	cfg     config.Config
	hub     *faults.Hub
	sink    notify.Sink
	manager *notify.Manager
	log     zerolog.Logger

	started atomic.Bool
	closed  atomic.Bool
}

var _ plugins.Plugin = (*Plugin)(nil)

// New creates the plugin. The manager is usable once Load has wired sink.
// opts are applied after the options derived from cfg.
func New(cfg config.Config, hub *faults.Hub, sink notify.Sink, opts ...notify.Option) *Plugin {
	base := []notify.Option{
		notify.WithGracePeriod(cfg.Toasts.GracePeriod),
		notify.WithPersistent(cfg.Toasts.AllowPersistent),
	}

	return &Plugin{
		cfg:     cfg,
		hub:     hub,
		sink:    sink,
		manager: notify.NewManager(append(base, opts...)...),
		log:     logging.Component(component),
	}
}

func (p *Plugin) Metadata() plugins.Metadata {
	return plugins.Metadata{
		ID:          ID,
		Name:        "Notification API",
		Description: "Transient toast notifications and global error reporting",
		Version:     "1.0.0",
		Author:      "toasts",
	}
}

// API returns the notification surface for other plugins. Calls made
// before Load return notify.ErrUninitialized.
func (p *Plugin) API() notify.API {
	return p.manager
}

// Manager returns the underlying manager.
func (p *Plugin) Manager() *notify.Manager {
	return p.manager
}

func (p *Plugin) Load(ctx context.Context) error {
	if err := p.manager.Wire(p.sink); err != nil {
		return fmt.Errorf("load %s: %w", ID, err)
	}
	p.log.Debug().Ctx(ctx).Msg("notification manager wired")
	return nil
}

// Start subscribes the error adapters selected by the errors config.
func (p *Plugin) Start(ctx context.Context) error {
	if p.hub == nil {
		return nil
	}
	if !p.started.CompareAndSwap(false, true) {
		return nil
	}

	r := &reporter{
		api:      p.manager,
		duration: p.cfg.Toasts.ErrorDuration,
		color:    p.cfg.Toasts.ErrorTitleColor,
		active:   func() bool { return !p.closed.Load() },
		log:      p.log,
	}

	errs := p.cfg.Errors
	if errs.Sync {
		p.hub.SubscribePanic(r.reportPanic)
	}
	if errs.Promise {
		p.hub.SubscribeAsync(r.reportAsync)
	}
	if errs.Critical {
		p.hub.IgnoreComponents(component, notify.LogComponent)
		p.hub.SubscribeCritical(r.reportCritical)
	}

	p.log.Debug().Ctx(ctx).
		Bool("sync", errs.Sync).
		Bool("promise", errs.Promise).
		Bool("critical", errs.Critical).
		Msg("error adapters installed")
	return nil
}

// Close detaches every notification and stops the adapters.
func (p *Plugin) Close() error {
	p.closed.Store(true)
	p.manager.Close()
	return nil
}
