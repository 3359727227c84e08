package extractor

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractEmptyText(t *testing.T) {
	e := NewFieldExtractor()

	for _, input := range []string{"", "  \n\t ", ".", "- -"} {
		extraction, err := e.Extract(input)
		if !errors.Is(err, ErrNoTextDetected) {
			t.Errorf("Extract(%q) error = %v, expected ErrNoTextDetected", input, err)
		}
		if extraction == nil {
			t.Fatalf("Extract(%q) should still return an extraction", input)
		}
		if extraction.FieldCount() != 0 {
			t.Errorf("Extract(%q) should populate no fields, got %d", input, extraction.FieldCount())
		}
		if extraction.Confidence != 0 {
			t.Errorf("Extract(%q) confidence = %v, expected 0", input, extraction.Confidence)
		}
	}
}

func TestExtractNafdacFormats(t *testing.T) {
	e := NewFieldExtractor()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"labelled with colon", "NAFDAC REG NO: A4-1234", "A4-1234"},
		{"labelled with slash", "NAFDAC/04-1234", "04-1234"},
		{"bare token", "take after meals A4-0945L keep dry", "A4-0945L"},
		{"old numeric form", "Reg 04-0053 Nigeria", "04-0053"},
		{"lowercase input", "nafdac no a4-1234", "A4-1234"},
		{"no number present", "PARACETAMOL TABLETS", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction, err := e.Extract(tt.text)
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if extraction.NafdacNumber != tt.expected {
				t.Errorf("NafdacNumber = %q, expected %q", extraction.NafdacNumber, tt.expected)
			}
		})
	}
}

func TestExtractFullPackage(t *testing.T) {
	e := NewFieldExtractor()

	text := "PARACETAMOL 500MG\nNAFDAC NO A4-0945L\nBATCH 123\nEXP 12/2026"
	extraction, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if extraction.DrugName != "PARACETAMOL 500MG" {
		t.Errorf("DrugName = %q, expected PARACETAMOL 500MG", extraction.DrugName)
	}
	if extraction.NafdacNumber != "A4-0945L" {
		t.Errorf("NafdacNumber = %q, expected A4-0945L", extraction.NafdacNumber)
	}
	if extraction.BatchNumber != "123" {
		t.Errorf("BatchNumber = %q, expected 123", extraction.BatchNumber)
	}
	if extraction.ExpiryDate != "12/2026" {
		t.Errorf("ExpiryDate = %q, expected 12/2026", extraction.ExpiryDate)
	}
	if extraction.Manufacturer != "" {
		t.Errorf("Manufacturer = %q, expected empty", extraction.Manufacturer)
	}

	// 4 of 5 fields populated
	if extraction.Confidence != 0.8 {
		t.Errorf("Confidence = %v, expected 0.8", extraction.Confidence)
	}
}

func TestExtractManufacturer(t *testing.T) {
	e := NewFieldExtractor()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"manufactured by", "Manufactured by Emzor Pharmaceutical Industries", "Emzor Pharmaceutical Industries"},
		{"mfg by", "MFG BY: Fidson Healthcare", "Fidson Healthcare"},
		{"mid-line label ignored", "not manufactured by anyone really", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction, err := e.Extract(tt.text)
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if extraction.Manufacturer != tt.expected {
				t.Errorf("Manufacturer = %q, expected %q", extraction.Manufacturer, tt.expected)
			}
		})
	}
}

func TestExtractExpiryRejectsImplausibleMonth(t *testing.T) {
	e := NewFieldExtractor()

	extraction, err := e.Extract("EXP 88/2026 valid later 12/2026")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if extraction.ExpiryDate != "12/2026" {
		t.Errorf("ExpiryDate = %q, expected the plausible token 12/2026", extraction.ExpiryDate)
	}
}

func TestExtractDrugNameSkipsMetadataLines(t *testing.T) {
	e := NewFieldExtractor()

	text := "NAFDAC REG NO: A4-1234\nBATCH NO: X99\nStore below 30C\nAmoxil 500mg Capsules\n500"
	extraction, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if extraction.DrugName != "Amoxil 500mg Capsules" {
		t.Errorf("DrugName = %q, expected Amoxil 500mg Capsules", extraction.DrugName)
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewFieldExtractor()
	text := "Coartem 80/480\nNAFDAC A4-1002\nManufactured by Novartis\nEXP MAR 2026\nLOT NO: CT-2211"

	first, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	second, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Extract not deterministic: %+v != %+v", first, second)
	}
}
