package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
)

// ErrDrugNotInCatalog is returned by registration-number lookups that
// match no record. It is local to one lookup, never fatal.
var ErrDrugNotInCatalog = errors.New("drug not in catalog")

// ErrCatalogLoadFailure signals that every load source failed. The catalog
// degrades to an empty set instead of raising it to callers; the error
// only surfaces in logs.
var ErrCatalogLoadFailure = errors.New("all catalog sources failed")

// Catalog owns the loaded record set. The first Load wins for the process
// lifetime; concurrent first-time callers share a single in-flight load.
type Catalog struct {
	container *Container
	sources   []interfaces.CatalogSource
	snapshot  interfaces.SnapshotStore // nil when no local store is configured
	remote    interfaces.CatalogSource // nil when no remote service is configured

	group  singleflight.Group
	loaded chan struct{} // closed once the first load completes
}

// New creates a catalog over the given container and load sources.
// Sources are tried in the order given; the snapshot store (if any) should
// come first and the seed source last.
func New(container *Container, snapshot interfaces.SnapshotStore, remote interfaces.CatalogSource) *Catalog {
	c := &Catalog{
		container: container,
		snapshot:  snapshot,
		remote:    remote,
		loaded:    make(chan struct{}),
	}

	if snapshot != nil {
		c.sources = append(c.sources, snapshot)
	}
	if remote != nil {
		c.sources = append(c.sources, remote)
	}
	c.sources = append(c.sources, NewSeedSource())

	return c
}

// Store exposes the underlying container for read access.
func (c *Catalog) Store() interfaces.CatalogStore {
	return c.container
}

// HasRemote reports whether a remote source is configured for refreshes.
func (c *Catalog) HasRemote() bool {
	return c.remote != nil
}

// Load populates the catalog from the first source that yields at least
// one record. Subsequent calls return immediately; concurrent first-time
// callers all await the same underlying load. A total source failure
// leaves the catalog empty and is not an error for the caller.
func (c *Catalog) Load(ctx context.Context) error {
	select {
	case <-c.loaded:
		return nil
	default:
	}

	_, err, _ := c.group.Do("load", func() (any, error) {
		select {
		case <-c.loaded:
			return nil, nil
		default:
		}
		defer close(c.loaded)

		c.loadOnce(ctx)
		return nil, nil
	})
	return err
}

func (c *Catalog) loadOnce(ctx context.Context) {
	start := time.Now()

	var failures []error
	for _, source := range c.sources {
		records, err := source.Fetch(ctx)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", source.Name(), err))
			logging.Warn("Catalog source failed", "source", source.Name(), "error", err)
			continue
		}
		if len(records) == 0 {
			logging.Debug("Catalog source empty", "source", source.Name())
			continue
		}

		c.publish(ctx, records, source)
		logging.Info("Catalog loaded",
			"source", source.Name(),
			"records", len(records),
			"duration", time.Since(start).String())
		return
	}

	// Degrade to an empty catalog; search and lookup return empty results.
	logging.Error("Catalog load failed, serving empty catalog",
		"error", errors.Join(append([]error{ErrCatalogLoadFailure}, failures...)...))
	c.container.ReplaceRecords([]entities.DrugRecord{}, "none")
}

// publish swaps the records in, logs the quality report, and persists a
// snapshot when the records came from the remote service.
func (c *Catalog) publish(ctx context.Context, records []entities.DrugRecord, source interfaces.CatalogSource) {
	report := BuildQualityReport(records)
	if len(report.DuplicateNafdac) > 0 {
		logging.Warn("Duplicate registration numbers detected",
			"total", len(report.DuplicateNafdac),
			"numbers", report.DuplicateNafdac)
	}
	if len(report.UnresolvableAlternatives) > 0 {
		logging.Warn("Alternative names with no catalog record",
			"total", len(report.UnresolvableAlternatives),
			"names", report.UnresolvableAlternatives)
	}

	c.container.ReplaceRecords(records, source.Name())

	if c.snapshot != nil && c.remote != nil && source == c.remote {
		if err := c.snapshot.Save(ctx, records); err != nil {
			logging.Warn("Failed to persist catalog snapshot", "error", err)
		}
	}
}

// Refresh re-pulls the catalog from the remote service and atomically
// swaps it in. Overlapping refreshes are skipped via the update guard.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.remote == nil {
		return fmt.Errorf("no remote catalog source configured")
	}

	if !c.container.BeginUpdate() {
		logging.Info("Catalog refresh already in progress, skipping...")
		return nil
	}
	defer c.container.EndUpdate()

	start := time.Now()

	records, err := c.remote.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh failed: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("catalog refresh returned no records")
	}

	c.publish(ctx, records, c.remote)

	logging.Info("Catalog refresh completed",
		"duration", time.Since(start).String(),
		"records", len(records))
	return nil
}

// LookupByNafdac finds a record by registration number, comparing the
// normalized query against each record's canonical number and variants.
func (c *Catalog) LookupByNafdac(number string) (*entities.DrugRecord, error) {
	norm := entities.NormalizeNafdac(number)
	if norm == "" {
		return nil, ErrDrugNotInCatalog
	}

	if record, exists := c.container.GetRecordsByNafdac()[norm]; exists {
		return record, nil
	}
	return nil, ErrDrugNotInCatalog
}

// LookupByID finds a record by its catalog id.
func (c *Catalog) LookupByID(id string) (*entities.DrugRecord, error) {
	if record, exists := c.container.GetRecordsByID()[id]; exists {
		return record, nil
	}
	return nil, ErrDrugNotInCatalog
}

// BuildQualityReport summarizes catalog quality issues in a load batch.
func BuildQualityReport(records []entities.DrugRecord) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	nafdacCount := make(map[string]int, len(records))
	names := make(map[string]bool, len(records)*2)
	for i := range records {
		nafdacCount[entities.NormalizeNafdac(records[i].NafdacNumber)]++
		names[strings.ToLower(records[i].Name)] = true
		if records[i].GenericName != "" {
			names[strings.ToLower(records[i].GenericName)] = true
		}

		if records[i].TrimesterRisks == (entities.TrimesterRisks{}) {
			report.RecordsWithoutRisks++
		}
		if records[i].GenericName == "" {
			report.RecordsWithoutGeneric++
		}
	}

	for norm, count := range nafdacCount {
		if count > 1 {
			report.DuplicateNafdac = append(report.DuplicateNafdac, norm)
		}
	}
	sort.Strings(report.DuplicateNafdac)

	seen := make(map[string]bool)
	for i := range records {
		for _, alt := range records[i].SafeAlternatives {
			key := strings.ToLower(alt)
			if names[key] || seen[key] {
				continue
			}
			seen[key] = true
			report.UnresolvableAlternatives = append(report.UnresolvableAlternatives, alt)
		}
	}
	sort.Strings(report.UnresolvableAlternatives)

	return report
}
