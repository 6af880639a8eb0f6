// Package janitor runs the scheduled consistency sweep: physical
// partitions are compared against the organization catalog, and
// partitions with no catalog record are reported. The sweep never
// deletes data on its own; orphans are surfaced for operator review.
package janitor

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
)

const sweepTimeout = 2 * time.Minute

// Janitor periodically sweeps the backing store for orphaned partitions.
type Janitor struct {
	store    orgs.Store
	schedule string
	logger   *observability.Logger
	metrics  *observability.Metrics
	cron     *cron.Cron
}

// New creates a janitor that runs on the given cron schedule.
func New(store orgs.Store, schedule string, logger *observability.Logger, metrics *observability.Metrics) *Janitor {
	return &Janitor{
		store:    store,
		schedule: schedule,
		logger:   logger,
		metrics:  metrics,
		cron:     cron.New(),
	}
}

// Start registers the sweep job and starts the scheduler.
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		defer observability.RecoverPanic(j.logger, "janitor sweep")

		if _, err := j.Sweep(ctx); err != nil {
			j.logger.WithError(err).Error("orphan partition sweep failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("janitor started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *Janitor) Stop(ctx context.Context) error {
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("janitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep lists physical partitions and reports those with no catalog
// record. Returns the orphaned partition ids.
func (j *Janitor) Sweep(ctx context.Context) ([]string, error) {
	partitions, err := j.store.ListPartitions(ctx)
	if err != nil {
		return nil, err
	}

	organizations, err := j.store.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]struct{}, len(organizations))
	for _, org := range organizations {
		claimed[org.PartitionID] = struct{}{}
	}

	var orphans []string
	for _, id := range partitions {
		if !strings.HasPrefix(id, orgs.PartitionPrefix) {
			continue
		}
		if _, ok := claimed[id]; !ok {
			orphans = append(orphans, id)
		}
	}

	j.metrics.OrphanPartitionsFound.Set(float64(len(orphans)))
	j.metrics.OrganizationsTotal.Set(float64(len(organizations)))

	if len(orphans) > 0 {
		j.logger.WithFields(map[string]interface{}{
			"count":      len(orphans),
			"partitions": orphans,
		}).Warn("orphaned partitions found")
	} else {
		j.logger.WithField("partitions", len(partitions)).Debug("sweep found no orphans")
	}

	return orphans, nil
}
