// Package catalog provides loading, caching and lookup of the reference
// drug catalog. Records are held in a container with atomic pointers for
// zero-downtime refreshes and are immutable once published, so they are
// safely shared by reference across concurrent reads.
package catalog

import (
	"sync/atomic"
	"time"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
)

// Compile-time check to ensure Container implements CatalogStore
var _ interfaces.CatalogStore = (*Container)(nil)

// Container holds the loaded catalog with atomic pointers for
// zero-downtime refreshes.
type Container struct {
	records         atomic.Value // []entities.DrugRecord
	recordsByID     atomic.Value // map[string]*entities.DrugRecord
	recordsByNafdac atomic.Value // map[string]*entities.DrugRecord
	source          atomic.Value // string
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
}

// NewContainer creates a new Container with empty data
func NewContainer() *Container {
	c := &Container{}
	c.records.Store(make([]entities.DrugRecord, 0))
	c.recordsByID.Store(make(map[string]*entities.DrugRecord))
	c.recordsByNafdac.Store(make(map[string]*entities.DrugRecord))
	c.source.Store("")
	c.lastUpdated.Store(time.Time{})
	return c
}

// Thread-safe getters with type check

// GetRecords returns the list of drug records
func (c *Container) GetRecords() []entities.DrugRecord {
	if v := c.records.Load(); v != nil {
		if records, ok := v.([]entities.DrugRecord); ok {
			return records
		}
	}

	logging.Warn("Drug record list is empty or invalid")
	return []entities.DrugRecord{}
}

// GetRecordsByID returns the id map for O(1) lookups
func (c *Container) GetRecordsByID() map[string]*entities.DrugRecord {
	if v := c.recordsByID.Load(); v != nil {
		if byID, ok := v.(map[string]*entities.DrugRecord); ok {
			return byID
		}
	}

	logging.Warn("Record id map is empty or invalid")
	return make(map[string]*entities.DrugRecord)
}

// GetRecordsByNafdac returns the normalized registration-number map for
// O(1) lookups. Keys include the canonical number and every variant.
func (c *Container) GetRecordsByNafdac() map[string]*entities.DrugRecord {
	if v := c.recordsByNafdac.Load(); v != nil {
		if byNafdac, ok := v.(map[string]*entities.DrugRecord); ok {
			return byNafdac
		}
	}

	logging.Warn("Record nafdac map is empty or invalid")
	return make(map[string]*entities.DrugRecord)
}

// GetSource returns the name of the source that produced the current data
func (c *Container) GetSource() string {
	if v := c.source.Load(); v != nil {
		if source, ok := v.(string); ok {
			return source
		}
	}
	return ""
}

// GetLastUpdated returns the timestamp of the last catalog refresh
func (c *Container) GetLastUpdated() time.Time {
	if v := c.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a catalog refresh is currently in progress
func (c *Container) IsUpdating() bool {
	return c.updating.Load()
}

// ReplaceRecords atomically replaces the catalog contents and rebuilds
// the lookup maps. The record slice must not be mutated afterwards.
func (c *Container) ReplaceRecords(records []entities.DrugRecord, source string) {
	byID := make(map[string]*entities.DrugRecord, len(records))
	byNafdac := make(map[string]*entities.DrugRecord, len(records))

	for i := range records {
		rec := &records[i]
		byID[rec.ID] = rec

		if norm := entities.NormalizeNafdac(rec.NafdacNumber); norm != "" {
			byNafdac[norm] = rec
		}
		for _, variant := range rec.NafdacVariants {
			if norm := entities.NormalizeNafdac(variant); norm != "" {
				// First record wins so canonical numbers are never shadowed
				if _, exists := byNafdac[norm]; !exists {
					byNafdac[norm] = rec
				}
			}
		}
	}

	// Atomic swap (zero downtime replacement)
	c.records.Store(records)
	c.recordsByID.Store(byID)
	c.recordsByNafdac.Store(byNafdac)
	c.source.Store(source)
	c.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a catalog refresh.
// Returns true if the refresh can proceed, false if another is in progress
func (c *Container) BeginUpdate() bool {
	return c.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a catalog refresh
func (c *Container) EndUpdate() {
	c.updating.Store(false)
}
