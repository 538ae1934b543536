// =============================================================================
// Disbursement Payload Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file describes:
//
//   1. Workbook layout: header row and first data row shared by all sheets
//   2. Output settings: payload directory and delivery-registry file
//   3. API settings: endpoint, request timeout, caller-identity header
//   4. Variants: the ordered list of sheets to process, each tagged with
//      the payload variant it produces and the columns that feed the
//      generated file name
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Declarative: sheets and naming rules change without code changes
//   - Validated: all configurations are validated on load; a bad variant
//     kind or column letter aborts the run before any row is processed
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/payops-th/disburse/internal/columns"
	"github.com/payops-th/disburse/internal/payload"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration, loaded from config.yaml.
type Config struct {
	// Workbook describes the fixed layout of every input sheet.
	Workbook WorkbookSettings `yaml:"workbook"`

	// OutputDir is the directory where generated JSON payloads are placed.
	// It is created if absent.
	// Default: "./payloads"
	OutputDir string `yaml:"output_dir"`

	// RegistryFile is the path of the session delivery registry: the set of
	// payload files already confirmed delivered. Deleting the file starts a
	// fresh session.
	// Default: "<output_dir>/.delivered.json"
	RegistryFile string `yaml:"registry_file"`

	// API contains the settings for the remote submission endpoint.
	API APISettings `yaml:"api"`

	// Variants is the ordered list of sheets to process. Sheet order here
	// is the processing order of a generation run.
	Variants []VariantConfig `yaml:"variants"`
}

// WorkbookSettings describes where headers and data live in input sheets.
type WorkbookSettings struct {
	// HeaderRow is the 1-based row containing column headers.
	// Default: 22
	HeaderRow int `yaml:"header_row"`

	// DataStartRow is the 1-based row where data begins. It must be below
	// the header row.
	// Default: 23
	DataStartRow int `yaml:"data_start_row"`
}

// APISettings describes the remote disbursement endpoint.
type APISettings struct {
	// URL is the HTTP POST target for payload submission.
	URL string `yaml:"url"`

	// TimeoutSeconds bounds each submission request. A request exceeding it
	// fails the attempt rather than hanging the batch.
	// Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserHeader is the caller-identity header name sent with each request.
	// Default: "x-user-name"
	UserHeader string `yaml:"user_header"`
}

// VariantConfig ties one workbook sheet to a payload variant.
type VariantConfig struct {
	// Sheet is the workbook sheet name.
	Sheet string `yaml:"sheet"`

	// Kind selects the payload variant built from this sheet's rows.
	// Valid values: "agent_broker", "company", "generic".
	Kind string `yaml:"kind"`

	// Required marks the sheet as mandatory: its absence from the workbook
	// aborts the run. Non-required sheets are skipped when missing, the way
	// the upstream template tolerates partially filled workbooks.
	Required bool `yaml:"required"`

	// FileNameColumns are the column letters whose values, joined by
	// underscores, name the generated file. When any of them resolves to an
	// empty value the writer falls back to a sequential payload_NNN.json
	// name. Naming columns differ between template generations, so this is
	// configuration rather than a fixed rule.
	// Default: [A, B, C, D]
	FileNameColumns []string `yaml:"file_name_columns"`
}

// Timeout returns the request timeout as a duration.
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load loads the configuration from a YAML file, applies defaults, and
// validates it. Validation failures are configuration errors: they abort
// the run before any row is processed.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Workbook.HeaderRow == 0 {
		cfg.Workbook.HeaderRow = 22
	}
	if cfg.Workbook.DataStartRow == 0 {
		cfg.Workbook.DataStartRow = cfg.Workbook.HeaderRow + 1
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./payloads"
	}
	if cfg.RegistryFile == "" {
		cfg.RegistryFile = cfg.OutputDir + "/.delivered.json"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.API.UserHeader == "" {
		cfg.API.UserHeader = "x-user-name"
	}
	if len(cfg.Variants) == 0 {
		cfg.Variants = []VariantConfig{
			{Sheet: "API_Doc_Agent_Broker", Kind: string(payload.VariantAgentBroker)},
			{Sheet: "API_Doc_Company", Kind: string(payload.VariantCompany)},
		}
	}
	for i := range cfg.Variants {
		if len(cfg.Variants[i].FileNameColumns) == 0 {
			cfg.Variants[i].FileNameColumns = []string{"A", "B", "C", "D"}
		}
	}
}

// validate checks the configuration for defects that would otherwise only
// surface mid-run.
func validate(cfg *Config) error {
	if cfg.Workbook.DataStartRow <= cfg.Workbook.HeaderRow {
		return fmt.Errorf("data_start_row (%d) must be below header_row (%d)",
			cfg.Workbook.DataStartRow, cfg.Workbook.HeaderRow)
	}

	seen := make(map[string]bool)
	for _, v := range cfg.Variants {
		if v.Sheet == "" {
			return fmt.Errorf("variant with empty sheet name")
		}
		if seen[v.Sheet] {
			return fmt.Errorf("sheet %q configured more than once", v.Sheet)
		}
		seen[v.Sheet] = true

		if _, err := payload.ParseVariant(v.Kind); err != nil {
			return fmt.Errorf("sheet %q: %w", v.Sheet, err)
		}

		for _, letter := range v.FileNameColumns {
			if _, err := columns.LetterIndex(letter); err != nil {
				return fmt.Errorf("sheet %q file_name_columns: %w", v.Sheet, err)
			}
		}
	}

	return nil
}
