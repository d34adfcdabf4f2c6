package repository_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flaque/filet"
	"github.com/quadrantgeo/pinmap/internal/models"
	"github.com/quadrantgeo/pinmap/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputTable = `address,city,state_abbr,zip,inst_name
1 Ferncroft Rd,Danvers,MA,01923,North Shore Community College
50 Oakland St,Wellesley Hills,MA,02481,MassBay Community College
`

func TestFileRepository_LoadAddresses(t *testing.T) {
	defer filet.CleanUp(t)
	dir := filet.TmpDir(t, "")

	t.Run("reads all rows in order", func(t *testing.T) {
		inputPath := filepath.Join(dir, "data.csv")
		require.NoError(t, os.WriteFile(inputPath, []byte(inputTable), 0o644))

		repo := repository.NewFileRepository(inputPath, filepath.Join(dir, "geocoded.csv"), slog.Default())
		records, err := repo.LoadAddresses()

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "1 Ferncroft Rd", records[0].Street)
		assert.Equal(t, "Danvers", records[0].City)
		assert.Equal(t, "MA", records[0].State)
		assert.Equal(t, "01923", records[0].Zip)
		assert.Equal(t, "North Shore Community College", records[0].Institution)
		assert.Equal(t, "MassBay Community College", records[1].Institution)
	})

	t.Run("missing input file", func(t *testing.T) {
		repo := repository.NewFileRepository(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "g.csv"), slog.Default())

		records, err := repo.LoadAddresses()

		require.Error(t, err)
		assert.Nil(t, records)
	})
}

func TestFileRepository_Dataset(t *testing.T) {
	defer filet.CleanUp(t)

	lat, lon := 42.5751, -70.9454
	records := []models.GeocodedRecord{
		{
			AddressRecord: models.AddressRecord{
				Street: "1 Ferncroft Rd", City: "Danvers", State: "MA", Zip: "01923",
				Institution: "North Shore Community College",
			},
			FullAddress: "1 Ferncroft Rd, Danvers, MA 01923",
			Latitude:    &lat,
			Longitude:   &lon,
		},
		{
			AddressRecord: models.AddressRecord{
				Street: "999 Unknown Way", City: "Nowhere", State: "MA", Zip: "00000",
				Institution: "Mystery College",
			},
			FullAddress: "999 Unknown Way, Nowhere, MA 00000",
			// unresolved: both coordinates absent
		},
	}

	t.Run("existence gate", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		repo := repository.NewFileRepository(filepath.Join(dir, "data.csv"), filepath.Join(dir, "geocoded.csv"), slog.Default())

		assert.False(t, repo.HasDataset())
		require.NoError(t, repo.SaveDataset(records))
		assert.True(t, repo.HasDataset())
	})

	t.Run("round trip keeps unresolved rows with absent coordinates", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		repo := repository.NewFileRepository(filepath.Join(dir, "data.csv"), filepath.Join(dir, "geocoded.csv"), slog.Default())

		require.NoError(t, repo.SaveDataset(records))

		loaded, err := repo.LoadDataset()
		require.NoError(t, err)
		require.Len(t, loaded, 2)

		require.True(t, loaded[0].Resolved())
		assert.InEpsilon(t, lat, *loaded[0].Latitude, 0.0001)
		assert.InEpsilon(t, lon, *loaded[0].Longitude, 0.0001)
		assert.Equal(t, "1 Ferncroft Rd, Danvers, MA 01923", loaded[0].FullAddress)

		assert.False(t, loaded[1].Resolved())
		assert.Nil(t, loaded[1].Latitude)
		assert.Nil(t, loaded[1].Longitude)
		assert.Equal(t, "Mystery College", loaded[1].Institution)
	})

	t.Run("artifact carries the full column set", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		datasetPath := filepath.Join(dir, "geocoded.csv")
		repo := repository.NewFileRepository(filepath.Join(dir, "data.csv"), datasetPath, slog.Default())

		require.NoError(t, repo.SaveDataset(records))

		raw, err := os.ReadFile(datasetPath)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "address,city,state_abbr,zip,inst_name,full_address,latitude,longitude")
	})

	t.Run("missing dataset file", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		repo := repository.NewFileRepository(filepath.Join(dir, "data.csv"), filepath.Join(dir, "geocoded.csv"), slog.Default())

		loaded, err := repo.LoadDataset()

		require.Error(t, err)
		assert.Nil(t, loaded)
	})
}
