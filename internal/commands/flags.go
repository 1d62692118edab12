package commands

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/hay-kot/toasts/internal/core/config"
	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/pkg/logutils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Hub collects panics, failed tasks and error log lines. It is created
	// in the Before hook, before the logger, so the logger can feed it.
	Hub *faults.Hub

	// Logs holds log output until the command exits when no log file is set.
	Logs *logutils.Deferred

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

// Config loads the configuration file on first use.
func (f *Flags) Config() (*config.Config, error) {
	f.configOnce.Do(func() {
		f.config, f.configErr = config.Load(f.ConfigPath)
	})
	return f.config, f.configErr
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toasts", "config.yaml")
}
