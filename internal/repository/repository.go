package repository

import (
	"log/slog"

	"github.com/quadrantgeo/pinmap/internal/models"
)

// Interface describes the storage operations the pipeline needs: reading
// the input address table and persisting/reloading the geocoded dataset
// artifact that is reused across runs.
type Interface interface {
	LoadAddresses() ([]models.AddressRecord, error)
	HasDataset() bool
	SaveDataset(records []models.GeocodedRecord) error
	LoadDataset() ([]models.GeocodedRecord, error)
}

// FileRepository implements Interface over two delimited text files on
// local disk. The dataset artifact is written once per input table and
// treated as immutable afterwards; deleting it is the only way to force
// a re-geocoding pass.
type FileRepository struct {
	inputPath   string
	datasetPath string
	log         *slog.Logger
}

// NewFileRepository creates a new instance of FileRepository with the provided paths.
// It returns a pointer to the newly created FileRepository.
func NewFileRepository(inputPath, datasetPath string, log *slog.Logger) *FileRepository {
	return &FileRepository{inputPath: inputPath, datasetPath: datasetPath, log: log}
}
