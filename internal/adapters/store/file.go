package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a Dataset from a JSON file.
func LoadFile(path string) (Dataset, error) {
	var ds Dataset

	raw, err := os.ReadFile(path)
	if err != nil {
		return ds, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}
	if err := json.Unmarshal(raw, &ds); err != nil {
		return ds, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}
	if len(ds.Seasons) == 0 {
		return ds, fmt.Errorf("%w: no seasons", ErrDatasetInvalid)
	}
	return ds, nil
}

// WriteFile writes a Dataset to a JSON file, creating or truncating it.
func WriteFile(path string, ds Dataset) error {
	raw, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
