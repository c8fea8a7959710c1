package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyWorkbookPath        = "workbook.path"
	KeyOutputDir           = "output.directory"
	KeyHistoryDB           = "history.database"
	KeyGSNSearchDirs       = "gsn.search_directories"
	KeyGSNFilePattern      = "gsn.file_pattern"
	KeyERSearchDirs        = "er.search_directories"
	KeyERFilePattern       = "er.file_pattern"
	KeyADScript            = "ad.script"
	KeyADResultsFile       = "ad.results_file"
	KeyPromptTimeout       = "prompt.timeout_seconds"
	KeySectionKeywords     = "report.section_keywords"
	KeySentinelColor       = "report.sentinel_color"
	KeySentinelTolerance   = "report.sentinel_tolerance"
	KeyERHostnameColumn    = "er.hostname_column"
	KeyERStatusColumn      = "er.status_column"
	KeyERSerialColumn      = "er.serial_column"
	KeyERStartRow          = "er.start_row"
	KeyERHostnamePrefixes  = "er.hostname_prefixes"
	KeyERNoLogonBucket     = "er.no_logon_bucket"
)

type Config struct {
	Workbook WorkbookConfig `mapstructure:"workbook" validate:"required"`
	Output   OutputConfig   `mapstructure:"output"`
	History  HistoryConfig  `mapstructure:"history"`
	GSN      SourceConfig   `mapstructure:"gsn" validate:"required"`
	ER       ERConfig       `mapstructure:"er" validate:"required"`
	AD       ADConfig       `mapstructure:"ad"`
	Prompt   PromptConfig   `mapstructure:"prompt"`
	Report   ReportConfig   `mapstructure:"report"`
}

type WorkbookConfig struct {
	// Path to the Weekly Report workbook, read and written in place.
	Path string `mapstructure:"path" validate:"required"`
}

type OutputConfig struct {
	Directory string `mapstructure:"directory"`
}

type HistoryConfig struct {
	Database string `mapstructure:"database"`
}

// SourceConfig locates an input export by filename prefix.
type SourceConfig struct {
	SearchDirectories []string `mapstructure:"search_directories"`
	FilePattern       string   `mapstructure:"file_pattern" validate:"required"`
}

type ERConfig struct {
	SearchDirectories []string `mapstructure:"search_directories"`
	FilePattern       string   `mapstructure:"file_pattern" validate:"required"`

	HostnameColumn   int      `mapstructure:"hostname_column" validate:"min=1"`
	StatusColumn     int      `mapstructure:"status_column" validate:"min=1"`
	SerialColumn     int      `mapstructure:"serial_column" validate:"min=1"`
	StartRow         int      `mapstructure:"start_row" validate:"min=1"`
	HostnamePrefixes []string `mapstructure:"hostname_prefixes" validate:"min=1"`
	NoLogonBucket    string   `mapstructure:"no_logon_bucket" validate:"required"`
}

type ADConfig struct {
	// Script is the external directory-query command; empty disables the
	// query and only the results file is read.
	Script      string `mapstructure:"script"`
	ResultsFile string `mapstructure:"results_file"`
}

type PromptConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"min=1"`
}

type ReportConfig struct {
	SectionKeywords   []string `mapstructure:"section_keywords"`
	SentinelColor     string   `mapstructure:"sentinel_color"`
	SentinelTolerance []string `mapstructure:"sentinel_tolerance"`
}

// SentinelFills is the canonical sentinel color followed by the tolerance
// list, the order the extractor checks them in.
func (r ReportConfig) SentinelFills() []string {
	fills := make([]string, 0, len(r.SentinelTolerance)+1)
	fills = append(fills, r.SentinelColor)
	fills = append(fills, r.SentinelTolerance...)
	return fills
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# weeklyreport configuration
workbook:
  path: "C:/Reports/SM Team - SG Weekly Report.xlsx"

output:
  directory: "./output"

history:
  database: "./weeklyreport.db"

gsn:
  search_directories: []
  file_pattern: "alm_hardware"

er:
  search_directories: []
  file_pattern: "er_export"
  hostname_column: 11
  status_column: 37
  serial_column: 15
  start_row: 4
  hostname_prefixes: ["SGASC", "SGESC", "SGSC", "SGWSC", "SGXSC"]
  no_logon_bucket: "Between 31 and 60 days"

ad:
  script: ""
  results_file: "./ad_results.json"

prompt:
  timeout_seconds: 30

report:
  section_keywords: ["AD Clean up", "MFA", "EDS"]
  sentinel_color: "#AEAAAA"
  sentinel_tolerance: ["#AEAAAE", "#EFEFEF", "#F2F2F2", "#E0E0E0", "#D3D3D3"]
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateColors(cfg.Report); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, "./output")
	v.SetDefault(KeyHistoryDB, "./weeklyreport.db")
	v.SetDefault(KeyGSNSearchDirs, []string{})
	v.SetDefault(KeyGSNFilePattern, "alm_hardware")
	v.SetDefault(KeyERSearchDirs, []string{})
	v.SetDefault(KeyERFilePattern, "er_export")
	v.SetDefault(KeyERHostnameColumn, 11)
	v.SetDefault(KeyERStatusColumn, 37)
	v.SetDefault(KeyERSerialColumn, 15)
	v.SetDefault(KeyERStartRow, 4)
	v.SetDefault(KeyERHostnamePrefixes, []string{"SGASC", "SGESC", "SGSC", "SGWSC", "SGXSC"})
	v.SetDefault(KeyERNoLogonBucket, "Between 31 and 60 days")
	v.SetDefault(KeyADResultsFile, "./ad_results.json")
	v.SetDefault(KeyPromptTimeout, 30)
	v.SetDefault(KeySectionKeywords, []string{"AD Clean up", "MFA", "EDS"})
	v.SetDefault(KeySentinelColor, "#AEAAAA")
	v.SetDefault(KeySentinelTolerance, []string{"#AEAAAE", "#EFEFEF", "#F2F2F2", "#E0E0E0", "#D3D3D3"})
}

func validateColors(report ReportConfig) error {
	if err := validateColor(report.SentinelColor); err != nil {
		return fmt.Errorf("validation failed: report.sentinel_color: %w", err)
	}
	for i, color := range report.SentinelTolerance {
		if err := validateColor(color); err != nil {
			return fmt.Errorf("validation failed: report.sentinel_tolerance[%d]: %w", i, err)
		}
	}
	return nil
}

func validateColor(color string) error {
	trimmed := strings.TrimPrefix(color, "#")
	if len(trimmed) != 6 {
		return fmt.Errorf("%q is not a #RRGGBB color", color)
	}
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("%q is not a #RRGGBB color", color)
		}
	}
	return nil
}
