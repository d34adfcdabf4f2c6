package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the pinmap pipeline.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server (0 disables it).
// - ProviderType: The type of geocoding provider to use (google, nominatim).
// - APIKey: The API key for accessing external services (required for Google).
// - RequestTimeout: The timeout applied to a single geocoding lookup.
// - RetryBackoff: The fixed pause before the single retry of a failed lookup.
// - InputFile / DatasetFile / BoundaryFile / OutputFile: the pipeline's file paths.
// - Render: map composition settings.
type Config struct {
	Env            string        // Env is the current environment: local, development, production.
	Port           int           // Port is the monitoring server port; 0 disables the server.
	ProviderType   string        // ProviderType specifies which geocoding provider to use.
	APIKey         string        // The API key for accessing external services.
	RequestTimeout time.Duration // Timeout for a single geocoding lookup.
	RetryBackoff   time.Duration // Pause before the single lookup retry.
	InputFile      string        // Path to the input address table.
	DatasetFile    string        // Path to the persisted geocoded dataset artifact.
	BoundaryFile   string        // Path to the region outline shapefile.
	OutputFile     string        // Path of the rendered map image.
	Render         RenderConfig  // Render holds the map composition settings.
}

// RenderConfig holds the map composition settings.
type RenderConfig struct {
	Title      string // Title drawn at the top of the map.
	ExtentMode string // Visible extent source: "data" or "boundary".
	Width      int    // Output image width in pixels.
	Height     int    // Output image height in pixels.
}

// MustLoad loads the configuration from the environment (a .env file is
// honored when present) and returns a Config struct. It panics when a
// value cannot be parsed, which keeps startup failures loud.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("PINMAP")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("health_port", 0)
	vpr.SetDefault("provider_type", "nominatim")
	vpr.SetDefault("request_timeout", "10s")
	vpr.SetDefault("retry_backoff", "2s")
	vpr.SetDefault("input_file", "data.csv")
	vpr.SetDefault("dataset_file", "geocoded.csv")
	vpr.SetDefault("boundary_file", "boundary/region.shp")
	vpr.SetDefault("output_file", "address_map.png")
	vpr.SetDefault("map_title", "")
	vpr.SetDefault("extent_mode", "data")
	vpr.SetDefault("image_width", 2000)
	vpr.SetDefault("image_height", 1600)

	timeout, err := time.ParseDuration(vpr.GetString("request_timeout"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	backoff, err := time.ParseDuration(vpr.GetString("retry_backoff"))
	if err != nil {
		panic("failed to parse retry backoff from configuration")
	}

	return &Config{
		Env:            vpr.GetString("env"),
		Port:           vpr.GetInt("health_port"),
		ProviderType:   vpr.GetString("provider_type"),
		APIKey:         vpr.GetString("provider_key"),
		RequestTimeout: timeout,
		RetryBackoff:   backoff,
		InputFile:      vpr.GetString("input_file"),
		DatasetFile:    vpr.GetString("dataset_file"),
		BoundaryFile:   vpr.GetString("boundary_file"),
		OutputFile:     vpr.GetString("output_file"),
		Render: RenderConfig{
			Title:      vpr.GetString("map_title"),
			ExtentMode: vpr.GetString("extent_mode"),
			Width:      vpr.GetInt("image_width"),
			Height:     vpr.GetInt("image_height"),
		},
	}
}
