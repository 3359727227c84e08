package entities

import (
	"testing"
)

func TestNormalizeNafdac(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"hyphenated", "A4-1234", "A41234"},
		{"lowercase", "a4-0945l", "A40945L"},
		{"spaces and dots", " 04. 0053 ", "040053"},
		{"already normalized", "A41234", "A41234"},
		{"slash separator", "A4/1234", "A41234"},
		{"empty", "", ""},
		{"only punctuation", "--//..", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeNafdac(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeNafdac(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeNafdacIdempotent(t *testing.T) {
	inputs := []string{"A4-1234", "a4-0945l", "04-0053", "NAFDAC A4/1234"}

	for _, input := range inputs {
		once := NormalizeNafdac(input)
		twice := NormalizeNafdac(once)
		if once != twice {
			t.Errorf("NormalizeNafdac not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestMatchesNafdac(t *testing.T) {
	record := DrugRecord{
		ID:             "test-1",
		NafdacNumber:   "A4-0945L",
		NafdacVariants: []string{"04-0945", "A40945L"},
	}

	tests := []struct {
		name     string
		number   string
		expected bool
	}{
		{"canonical", "A4-0945L", true},
		{"canonical normalized", "A40945L", true},
		{"canonical lowercase", "a4-0945l", true},
		{"variant", "04-0945", true},
		{"variant with spaces", "04 0945", true},
		{"different number", "A4-1234", false},
		{"empty", "", false},
		{"punctuation only", "---", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := record.MatchesNafdac(tt.number); got != tt.expected {
				t.Errorf("MatchesNafdac(%q) = %v, expected %v", tt.number, got, tt.expected)
			}
		})
	}
}

func TestTrimesterRisksFor(t *testing.T) {
	risks := TrimesterRisks{
		First:  RiskSafe,
		Second: RiskCaution,
		Third:  RiskDanger,
	}

	if got := risks.For(TrimesterFirst); got != RiskSafe {
		t.Errorf("For(first) = %v, expected safe", got)
	}
	if got := risks.For(TrimesterSecond); got != RiskCaution {
		t.Errorf("For(second) = %v, expected caution", got)
	}
	if got := risks.For(TrimesterThird); got != RiskDanger {
		t.Errorf("For(third) = %v, expected danger", got)
	}
}

func TestValidTrimester(t *testing.T) {
	for _, trimester := range Trimesters {
		if !ValidTrimester(trimester) {
			t.Errorf("ValidTrimester(%q) should be true", trimester)
		}
	}

	invalid := []Trimester{"", "fourth", "FIRST", "1"}
	for _, trimester := range invalid {
		if ValidTrimester(trimester) {
			t.Errorf("ValidTrimester(%q) should be false", trimester)
		}
	}
}

func TestValidPregnancyCategory(t *testing.T) {
	valid := []PregnancyCategory{CategoryA, CategoryB, CategoryC, CategoryD, CategoryX}
	for _, category := range valid {
		if !ValidPregnancyCategory(category) {
			t.Errorf("ValidPregnancyCategory(%q) should be true", category)
		}
	}

	if ValidPregnancyCategory("E") {
		t.Error("ValidPregnancyCategory(E) should be false")
	}
	if ValidPregnancyCategory("") {
		t.Error("ValidPregnancyCategory(empty) should be false")
	}
}

func TestOCRExtractionFieldCount(t *testing.T) {
	empty := OCRExtraction{RawText: "something"}
	if got := empty.FieldCount(); got != 0 {
		t.Errorf("FieldCount of empty extraction = %d, expected 0", got)
	}

	full := OCRExtraction{
		RawText:      "something",
		DrugName:     "Panadol",
		NafdacNumber: "A4-0945L",
		Manufacturer: "GSK",
		BatchNumber:  "B123",
		ExpiryDate:   "12/2026",
	}
	if got := full.FieldCount(); got != 5 {
		t.Errorf("FieldCount of full extraction = %d, expected 5", got)
	}

	partial := OCRExtraction{RawText: "something", DrugName: "Panadol", ExpiryDate: "12/2026"}
	if got := partial.FieldCount(); got != 2 {
		t.Errorf("FieldCount of partial extraction = %d, expected 2", got)
	}
}
