package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	content := []byte(`workbook:
  path: "C:/Reports/SM Team - SG Weekly Report.xlsx"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}

	if cfg.GSN.FilePattern != "alm_hardware" {
		t.Errorf("gsn file pattern = %q", cfg.GSN.FilePattern)
	}
	if cfg.ER.HostnameColumn != 11 || cfg.ER.StatusColumn != 37 || cfg.ER.SerialColumn != 15 {
		t.Errorf("unexpected ER columns: %+v", cfg.ER)
	}
	if cfg.ER.NoLogonBucket != "Between 31 and 60 days" {
		t.Errorf("no-logon bucket = %q", cfg.ER.NoLogonBucket)
	}
	if cfg.Prompt.TimeoutSeconds != 30 {
		t.Errorf("prompt timeout = %d", cfg.Prompt.TimeoutSeconds)
	}
	if cfg.Report.SentinelColor != "#AEAAAA" {
		t.Errorf("sentinel color = %q", cfg.Report.SentinelColor)
	}
}

func TestValidateYAMLContent_RejectsMissingWorkbookPath(t *testing.T) {
	t.Parallel()

	content := []byte(`output:
  directory: "./output"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for missing workbook path")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsBadSentinelColor(t *testing.T) {
	t.Parallel()

	content := []byte(`workbook:
  path: "report.xlsx"
report:
  sentinel_color: "#AEAAA"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for malformed color")
	}
	if !strings.Contains(err.Error(), "sentinel_color") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("example config should validate: %v", err)
	}

	fills := cfg.Report.SentinelFills()
	if len(fills) != 6 || fills[0] != "#AEAAAA" {
		t.Fatalf("sentinel fills = %v", fills)
	}
}
