// Package constants provides shared constants for the staffing-planner application.
package constants

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Pagination constants
const (
	// DefaultPageSize is the number of schedules shown per page
	DefaultPageSize = 100

	// PageWindow is how many page numbers are listed on each side of the current page
	PageWindow = 2
)

// Solver constants
const (
	// DefaultTargetUnit multiplies the configured target; 1 means the target is in base currency units
	DefaultTargetUnit = 1

	// DefaultCacheEntries is the maximum number of solved inputs kept by the planner cache
	DefaultCacheEntries = 256

	// DefaultMaxSearches is how many searches the server runs at once
	DefaultMaxSearches = 4

	// VariationPrecision is the number of decimals used when displaying a coefficient of variation
	VariationPrecision = 4
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultSolveTimeout is how long the server waits on a single solve, as a duration string
	DefaultSolveTimeout = "30s"
)

// Metrics constants
const (
	// MetricsNamespace is the Prometheus namespace for all exported metrics
	MetricsNamespace = "staffing_planner"
)
