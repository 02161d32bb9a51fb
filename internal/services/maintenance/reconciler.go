// Package maintenance reconciles vector-store state against the document
// store, sweeping collections whose document entry no longer exists.
// Orphans arise from failed ingestions and from deletes whose collection
// removal failed.
package maintenance

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
)

// Reconciler sweeps orphaned vector collections on a cron schedule
type Reconciler struct {
	documents interfaces.DocumentStorage
	index     interfaces.VectorIndex
	logger    arbor.ILogger
	schedule  string
	cron      *cron.Cron
}

// NewReconciler creates a new reconciler. An empty schedule disables the
// periodic sweep; Reconcile can still be called directly.
func NewReconciler(documents interfaces.DocumentStorage, index interfaces.VectorIndex, config *common.MaintenanceConfig, logger arbor.ILogger) (*Reconciler, error) {
	if config.ReconcileSchedule != "" {
		if err := common.ValidateSchedule(config.ReconcileSchedule); err != nil {
			return nil, fmt.Errorf("invalid reconcile schedule: %w", err)
		}
	}

	return &Reconciler{
		documents: documents,
		index:     index,
		logger:    logger,
		schedule:  config.ReconcileSchedule,
	}, nil
}

// Reconcile deletes every vector collection that has no corresponding
// document entry. It returns the number of collections removed.
func (r *Reconciler) Reconcile(ctx context.Context) (int, error) {
	collections, err := r.index.ListCollections(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list collections: %w", err)
	}

	removed := 0
	for _, name := range collections {
		has, err := r.documents.HasDocument(name)
		if err != nil {
			return removed, fmt.Errorf("failed to check document %s: %w", name, err)
		}
		if has {
			continue
		}

		if err := r.index.DeleteCollection(ctx, name); err != nil {
			r.logger.Warn().
				Err(err).
				Str("collection", name).
				Msg("Failed to delete orphaned collection")
			continue
		}

		r.logger.Info().Str("collection", name).Msg("Deleted orphaned vector collection")
		removed++
	}

	if removed > 0 {
		r.logger.Info().
			Int("removed", removed).
			Int("scanned", len(collections)).
			Msg("Orphan sweep completed")
	}

	return removed, nil
}

// Start schedules periodic sweeps. A no-op when no schedule is configured.
func (r *Reconciler) Start() error {
	if r.schedule == "" {
		r.logger.Debug().Msg("Reconcile schedule not configured, periodic sweep disabled")
		return nil
	}

	r.cron = cron.New()
	_, err := r.cron.AddFunc(r.schedule, func() {
		if _, err := r.Reconcile(context.Background()); err != nil {
			r.logger.Error().Err(err).Msg("Scheduled orphan sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule orphan sweep: %w", err)
	}

	r.cron.Start()
	r.logger.Info().Str("schedule", r.schedule).Msg("Orphan sweep scheduled")
	return nil
}

// Stop halts the periodic sweep and waits for a running sweep to finish
func (r *Reconciler) Stop() {
	if r.cron != nil {
		ctx := r.cron.Stop()
		<-ctx.Done()
	}
}
