// Package scheduler provides automated catalog refresh scheduling and health
// monitoring for the drugscan API. It handles cron-based refreshes and
// coordinates them with the catalog container using dependency injection.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/obioma/drugscan-api/catalog"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
	"github.com/obioma/drugscan-api/metrics"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles catalog refreshes and staleness monitoring
type Scheduler struct {
	catalog   *catalog.Catalog
	scheduler *gocron.Scheduler
	done      chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(cat *catalog.Catalog) *Scheduler {
	return &Scheduler{
		catalog:   cat,
		scheduler: gocron.NewScheduler(time.Local),
		done:      make(chan struct{}),
	}
}

// Start performs the initial catalog load and schedules twice-daily refreshes
func (s *Scheduler) Start() error {
	// Initial load. A total source failure degrades to an empty catalog
	// and is not fatal here; the health endpoint reports it.
	if err := s.catalog.Load(context.Background()); err != nil {
		logging.Error("Failed to perform initial catalog load", "error", err)
		return fmt.Errorf("initial catalog load failed: %w", err)
	}
	metrics.CatalogRecords.Set(float64(len(s.catalog.Store().GetRecords())))

	// Schedule refreshes at 06:00 and 18:00 daily. Without a remote
	// source there is nothing to refresh from.
	if s.catalog.HasRemote() {
		_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
			if err := s.refresh(); err != nil {
				logging.Error("Failed to refresh catalog", "error", err)
			}
		})

		if err != nil {
			logging.Error("Failed to schedule refreshes", "error", err)
			return fmt.Errorf("failed to schedule refreshes: %w", err)
		}

		s.scheduler.StartAsync()
	}

	// Start staleness monitoring
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.done)
	s.scheduler.Stop()
}

// refresh pulls the catalog from the remote service and records metrics
func (s *Scheduler) refresh() error {
	logging.Info(fmt.Sprintf("Starting catalog refresh at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	if err := s.catalog.Refresh(context.Background()); err != nil {
		return err
	}

	metrics.CatalogRefreshDuration.Observe(time.Since(start).Seconds())
	metrics.CatalogRecords.Set(float64(len(s.catalog.Store().GetRecords())))
	return nil
}

// startStalenessMonitoring warns when the catalog has not been refreshed
// for longer than a full refresh cycle
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				lastUpdate := s.catalog.Store().GetLastUpdated()
				if time.Since(lastUpdate) > 25*time.Hour {
					logging.Warn("Catalog hasn't been refreshed in over 25 hours")
				}
			}
		}
	}()
}
