package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"insurance_desk/internal/domain/value"
)

// DefaultFallbackFile is the complete catalog used when no category file
// yields records.
const DefaultFallbackFile = "Bank_infos_complete.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// categoryFiles is the load order. File names match what the brochure
// scrapers write, including the stray space in the health file.
//
//nolint:gochecknoglobals
var categoryFiles = []categoryFile{
	{Category: value.CategoryHealth, Name: "Health _Plans.json"},
	{Category: value.CategoryPension, Name: "Pension_Plans.json"},
	{Category: value.CategoryProtection, Name: "Protection_Plans.json"},
	{Category: value.CategorySavings, Name: "Savings_Plans.json"},
	{Category: value.CategoryULIP, Name: "ULIP_Plans.json"},
	{Category: value.CategoryAnnuity, Name: "Annuity_Plans.json"},
	{Category: value.CategoryMotor, Name: "Motor_Plans.json"},
}

type categoryFile struct {
	Category value.Category
	Name     string
}

var errNotArray = errors.New("top level value is not a JSON array")

// readRecords reads a category file as a list of raw records. A missing file
// yields no records and no error.
func readRecords(path string) ([]jsoniter.RawMessage, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("os.ReadFile: %w", err)
	}

	var records []jsoniter.RawMessage
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, true, fmt.Errorf("%w: %w", errNotArray, err)
	}

	return records, true, nil
}

// readFallback accepts either a JSON array of policies or an object with a
// "policies" array.
func readFallback(path string) ([]jsoniter.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var records []jsoniter.RawMessage
	if err = json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Policies []jsoniter.RawMessage `json:"policies"`
	}

	if err = json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return wrapped.Policies, nil
}

// writeJSONFile replaces path atomically.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err = tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
