package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/toasts/internal/core/config"
	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/internal/core/notify"
	"github.com/hay-kot/toasts/internal/plugins"
	"github.com/hay-kot/toasts/internal/plugins/notifications"
)

// startPlugins registers the notification plugin with sink, then loads and
// starts every plugin. The caller closes the returned manager.
func startPlugins(ctx context.Context, cfg *config.Config, hub *faults.Hub, sink notify.Sink) (*notifications.Plugin, *plugins.Manager, error) {
	notifyPlugin := notifications.New(*cfg, hub, sink)

	mgr := plugins.NewManager()
	if err := mgr.Register(notifyPlugin); err != nil {
		return nil, nil, fmt.Errorf("register plugins: %w", err)
	}

	mgr.LoadAll(ctx)
	mgr.StartAll(ctx)

	if !notifyPlugin.Manager().Wired() {
		mgr.CloseAll()
		return nil, nil, fmt.Errorf("notification plugin failed to load")
	}

	return notifyPlugin, mgr, nil
}
