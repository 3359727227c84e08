package catalog

import (
	"sync"
	"testing"
	"time"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/logging"
)

func TestNewContainer(t *testing.T) {
	logging.InitLogger("")

	c := NewContainer()

	if c == nil {
		t.Fatal("NewContainer returned nil")
	}

	// Test initial state
	if c.IsUpdating() {
		t.Error("NewContainer should not be updating")
	}
	if !c.GetLastUpdated().IsZero() {
		t.Error("NewContainer should have zero lastUpdated time")
	}
	if len(c.GetRecords()) != 0 {
		t.Error("NewContainer should have empty records")
	}
	if len(c.GetRecordsByID()) != 0 {
		t.Error("NewContainer should have empty id map")
	}
	if len(c.GetRecordsByNafdac()) != 0 {
		t.Error("NewContainer should have empty nafdac map")
	}
	if c.GetSource() != "" {
		t.Error("NewContainer should have empty source")
	}
}

func TestReplaceRecords(t *testing.T) {
	logging.InitLogger("")

	c := NewContainer()

	records := []entities.DrugRecord{
		{ID: "drug-1", NafdacNumber: "A4-0945L", NafdacVariants: []string{"04-0945"}, Name: "Panadol"},
		{ID: "drug-2", NafdacNumber: "04-0053", Name: "Emzor Paracetamol"},
	}

	before := time.Now()
	c.ReplaceRecords(records, "test")

	if len(c.GetRecords()) != 2 {
		t.Errorf("expected 2 records, got %d", len(c.GetRecords()))
	}
	if c.GetSource() != "test" {
		t.Errorf("source = %q, expected test", c.GetSource())
	}
	if c.GetLastUpdated().Before(before) {
		t.Error("lastUpdated should be set by ReplaceRecords")
	}

	byID := c.GetRecordsByID()
	if byID["drug-1"] == nil || byID["drug-1"].Name != "Panadol" {
		t.Error("id map missing drug-1")
	}
	if byID["drug-2"] == nil {
		t.Error("id map missing drug-2")
	}

	// Canonical and variant spellings both resolve, normalized
	byNafdac := c.GetRecordsByNafdac()
	if byNafdac["A40945L"] == nil || byNafdac["A40945L"].ID != "drug-1" {
		t.Error("nafdac map missing canonical A40945L")
	}
	if byNafdac["040945"] == nil || byNafdac["040945"].ID != "drug-1" {
		t.Error("nafdac map missing variant 040945")
	}
	if byNafdac["040053"] == nil || byNafdac["040053"].ID != "drug-2" {
		t.Error("nafdac map missing canonical 040053")
	}
}

func TestReplaceRecordsVariantNeverShadowsCanonical(t *testing.T) {
	logging.InitLogger("")

	c := NewContainer()

	// drug-1's canonical number is also listed as a variant of drug-2
	records := []entities.DrugRecord{
		{ID: "drug-1", NafdacNumber: "A4-1111", Name: "First"},
		{ID: "drug-2", NafdacNumber: "A4-2222", NafdacVariants: []string{"A4-1111"}, Name: "Second"},
	}

	c.ReplaceRecords(records, "test")

	byNafdac := c.GetRecordsByNafdac()
	if byNafdac["A41111"] == nil || byNafdac["A41111"].ID != "drug-1" {
		t.Error("variant spelling shadowed a canonical registration number")
	}
}

func TestBeginEndUpdate(t *testing.T) {
	logging.InitLogger("")

	c := NewContainer()

	if !c.BeginUpdate() {
		t.Fatal("first BeginUpdate should succeed")
	}
	if c.BeginUpdate() {
		t.Error("second BeginUpdate should fail while update in progress")
	}
	if !c.IsUpdating() {
		t.Error("IsUpdating should be true during an update")
	}

	c.EndUpdate()
	if c.IsUpdating() {
		t.Error("IsUpdating should be false after EndUpdate")
	}
	if !c.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
	c.EndUpdate()
}

func TestConcurrentReadsDuringReplace(t *testing.T) {
	logging.InitLogger("")

	c := NewContainer()
	c.ReplaceRecords([]entities.DrugRecord{{ID: "drug-1", Name: "Panadol"}}, "test")

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					records := c.GetRecords()
					if len(records) == 0 {
						t.Error("readers must never observe an empty catalog during replace")
						return
					}
					_ = c.GetRecordsByID()
					_ = c.GetRecordsByNafdac()
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		c.ReplaceRecords([]entities.DrugRecord{
			{ID: "drug-1", Name: "Panadol"},
			{ID: "drug-2", Name: "Amoxil"},
		}, "test")
	}

	close(stop)
	wg.Wait()
}
