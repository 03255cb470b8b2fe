package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/papapumpkin/constellate/internal/config"
	"github.com/papapumpkin/constellate/internal/telemetry"
)

// watch re-runs the analysis whenever the settings file or a chart file
// changes. A settings change reloads the engine first, which discards the
// orb cache. It returns when ctx is cancelled.
func (a *analyzer) watch(ctx context.Context, settingsFile string, files []string) error {
	w, err := config.NewWatcher(append([]string{settingsFile}, files...)...)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()
	a.printer.Watching(w.Files())

	settingsAbs := ""
	if settingsFile != "" {
		settingsAbs, _ = filepath.Abs(settingsFile)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			a.printer.Reload(c.File)
			a.emit(telemetry.KindFileChanged, "", c.File, nil)
			if c.File == settingsAbs && !c.Removed {
				if err := a.reload(); err != nil {
					a.printer.Error(err.Error())
					continue
				}
				a.emit(telemetry.KindConfigReload, "", c.File, nil)
			}
			if err := a.runAll(ctx, files); err != nil {
				a.printer.Error(err.Error())
			}
		}
	}
}

// reload re-reads the settings file and reconfigures the engine. Invalid
// settings leave the engine untouched.
func (a *analyzer) reload() error {
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	s, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if errs := s.Validate(); len(errs) > 0 {
		return fmt.Errorf("settings rejected: %w", errs[0])
	}
	a.engine.Reconfigure(s)
	return nil
}
