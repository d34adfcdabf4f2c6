package repository

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/quadrantgeo/pinmap/internal/models"
)

// LoadAddresses reads the input address table. Rows are returned in file
// order; field contents are not validated here.
//
// Returns:
// - A slice of models.AddressRecord, one per input row.
// - An error if the file cannot be read or a row cannot be decoded.
func (r *FileRepository) LoadAddresses() ([]models.AddressRecord, error) {
	data, err := os.ReadFile(r.inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input table %s: %w", r.inputPath, err)
	}

	var records []models.AddressRecord
	if err = csvutil.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode input table %s: %w", r.inputPath, err)
	}

	r.log.Debug("Loaded input address table", "path", r.inputPath, "rows", len(records))

	return records, nil
}

// HasDataset reports whether a geocoded dataset artifact already exists
// on disk. This is an existence check only; the artifact's completeness
// is not inspected here.
func (r *FileRepository) HasDataset() bool {
	_, err := os.Stat(r.datasetPath)
	return err == nil
}

// SaveDataset persists the geocoded dataset unconditionally, including
// rows whose coordinates are absent (encoded as empty cells).
func (r *FileRepository) SaveDataset(records []models.GeocodedRecord) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode geocoded dataset: %w", err)
	}

	if err = os.WriteFile(r.datasetPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geocoded dataset %s: %w", r.datasetPath, err)
	}

	r.log.Debug("Persisted geocoded dataset", "path", r.datasetPath, "rows", len(records))

	return nil
}

// LoadDataset reads a previously persisted geocoded dataset. Empty
// latitude/longitude cells decode to nil pointers (unresolved rows).
func (r *FileRepository) LoadDataset() ([]models.GeocodedRecord, error) {
	data, err := os.ReadFile(r.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocoded dataset %s: %w", r.datasetPath, err)
	}

	var records []models.GeocodedRecord
	if len(bytes.TrimSpace(data)) > 0 {
		if err = csvutil.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode geocoded dataset %s: %w", r.datasetPath, err)
		}
	}

	r.log.Debug("Loaded geocoded dataset", "path", r.datasetPath, "rows", len(records))

	return records, nil
}
