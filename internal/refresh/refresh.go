// Package refresh reloads the menu catalog on a cron schedule, for sessions
// that opt into background refreshes.
package refresh

import (
	"context"

	"github.com/foodexpress/foodexpress-client/internal/catalog"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/robfig/cron/v3"
)

// MenuRefresher drives periodic catalog reloads.
type MenuRefresher struct {
	cron   *cron.Cron
	loader *catalog.Loader
	spec   string
}

// NewMenuRefresher creates a refresher with the given cron spec
func NewMenuRefresher(loader *catalog.Loader, spec string) *MenuRefresher {
	return &MenuRefresher{
		cron:   cron.New(),
		loader: loader,
		spec:   spec,
	}
}

// Start schedules the reloads.
func (r *MenuRefresher) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		logger.Debug("Starting scheduled menu reload", map[string]interface{}{
			"spec": r.spec,
		})

		if err := r.loader.Load(context.Background()); err != nil {
			logger.Warn("Scheduled menu reload failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}

		logger.Debug("Scheduled menu reload finished", nil)
	})
	if err != nil {
		logger.Error("Failed to schedule menu reload", err, map[string]interface{}{
			"spec": r.spec,
		})
		return err
	}

	r.cron.Start()
	logger.Info("Menu refresher started", map[string]interface{}{
		"spec": r.spec,
	})
	return nil
}

// Stop cancels the schedule.
func (r *MenuRefresher) Stop() {
	r.cron.Stop()
	logger.Info("Menu refresher stopped", nil)
}
