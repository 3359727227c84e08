// Package extractor turns raw OCR text from a photographed drug package
// into a structured, partially-confident field guess. Each field is parsed
// by its own pure function; Extract composes them in a fixed order so
// identical input always yields identical output.
package extractor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
)

// ErrNoTextDetected is returned when the raw text holds fewer than two
// meaningful characters. Terminal for the scan, non-fatal to the process.
var ErrNoTextDetected = errors.New("no text detected")

// guessedFields is the number of fields an extraction can populate; the
// confidence score is filled-fields / guessedFields.
const guessedFields = 5

// Pre-compiled patterns, compiled once at package initialization.
// Order matters: earlier patterns are more specific and win.
var (
	nafdacPatterns = []*regexp.Regexp{
		// Labelled forms: "NAFDAC REG NO: A4-1234", "NAFDAC/04-1234"
		regexp.MustCompile(`(?i)NAFDAC[\s./-]*(?:REG(?:\.|ISTRATION)?)?[\s./-]*(?:NO|NUMBER)?[\s.:/-]*([A-Z0-9]{1,3}-\d{3,5}[A-Z]?)`),
		// Bare letter-digit-hyphen token: "A4-0945L"
		regexp.MustCompile(`(?i)\b([A-Z]\d{1,2}-\d{3,5}[A-Z]?)\b`),
		// Older all-numeric form: "04-0053"
		regexp.MustCompile(`\b(0\d-\d{4})\b`),
	}

	expiryPatterns = []*regexp.Regexp{
		// "EXP 12/2026", "EXPIRY DATE: 08-27"
		regexp.MustCompile(`(?i)\bEXP(?:IRY)?\.?\s*(?:DATE)?\s*[:.]?\s*(\d{1,2}[/-]\d{2,4})`),
		// "EXP MAR 2026"
		regexp.MustCompile(`(?i)\bEXP(?:IRY)?\.?\s*(?:DATE)?\s*[:.]?\s*([A-Z]{3,9}\s+20\d{2})`),
		// Bare day/month/year token
		regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
		// Bare month/year token
		regexp.MustCompile(`\b(\d{1,2}[/-]20\d{2})\b`),
	}

	batchPattern = regexp.MustCompile(`(?i)\b(?:BATCH|LOT|B[/.]?N)\.?\s*(?:NO|NUMBER)?\.?\s*[:.]?\s*([A-Z0-9][A-Z0-9-]*)`)

	manufacturerPattern = regexp.MustCompile(`(?i)^\s*(?:MANUFACTURED\s+BY|MFG\.?\s*BY|MFD\.?\s*BY|MANUFACTURER)\s*[:.]?\s*(.+)$`)

	// Lines containing any of these are never the product name
	nameExclusions = []string{"nafdac", "batch", "lot", "exp", "manufactured", "mfg", "dosage", "store", "keep"}
)

// Compile-time check to ensure FieldExtractor implements Extractor
var _ interfaces.Extractor = (*FieldExtractor)(nil)

// FieldExtractor implements the heuristic field extraction pipeline.
type FieldExtractor struct{}

// NewFieldExtractor creates a field extractor
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// Extract runs all field heuristics over the raw text in a fixed order
// and returns the extraction. Text with fewer than two meaningful
// characters yields an empty extraction and ErrNoTextDetected.
func (e *FieldExtractor) Extract(rawText string) (*entities.OCRExtraction, error) {
	extraction := &entities.OCRExtraction{RawText: rawText}

	if meaningfulChars(rawText) < 2 {
		return extraction, ErrNoTextDetected
	}

	extraction.NafdacNumber = extractNafdacNumber(rawText)
	extraction.ExpiryDate = extractExpiryDate(rawText)
	extraction.BatchNumber = extractBatchNumber(rawText)
	extraction.Manufacturer = extractManufacturer(rawText)
	extraction.DrugName = extractDrugName(rawText)
	extraction.Confidence = float64(extraction.FieldCount()) / guessedFields

	return extraction, nil
}

// meaningfulChars counts letters and digits in the text.
func meaningfulChars(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// extractNafdacNumber scans the recognized registration-number formats in
// order and takes the first match.
func extractNafdacNumber(text string) string {
	for _, pattern := range nafdacPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return strings.ToUpper(match[1])
		}
	}
	return ""
}

// extractExpiryDate takes the first plausible date token.
func extractExpiryDate(text string) string {
	for _, pattern := range expiryPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if plausibleDate(match[1]) {
				return match[1]
			}
		}
	}
	return ""
}

// plausibleDate rejects tokens whose leading month component is not 1-12.
func plausibleDate(token string) bool {
	head := token
	if idx := strings.IndexAny(token, "/-"); idx > 0 {
		head = token[:idx]
	}
	month, err := strconv.Atoi(head)
	if err != nil {
		// Month-name form ("MAR 2026") has no numeric head to validate
		return true
	}
	// Day/month/year tokens may lead with a day instead of a month
	return month >= 1 && month <= 31
}

// extractBatchNumber scans for a batch/lot label followed by an
// alphanumeric token.
func extractBatchNumber(text string) string {
	for _, line := range splitLines(text) {
		if match := batchPattern.FindStringSubmatch(line); match != nil {
			return strings.ToUpper(match[1])
		}
	}
	return ""
}

// extractManufacturer captures the remainder of the first line carrying a
// manufacturer label.
func extractManufacturer(text string) string {
	for _, line := range splitLines(text) {
		if match := manufacturerPattern.FindStringSubmatch(line); match != nil {
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}

// extractDrugName takes the first line that is 2-60 characters, carries no
// exclusion keyword, and is not purely numeric.
func extractDrugName(text string) string {
	for _, line := range splitLines(text) {
		if len(line) < 2 || len(line) > 60 {
			continue
		}

		lower := strings.ToLower(line)
		excluded := false
		for _, keyword := range nameExclusions {
			if strings.Contains(lower, keyword) {
				excluded = true
				break
			}
		}
		if excluded || !containsLetter(line) {
			continue
		}

		return line
	}
	return ""
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
