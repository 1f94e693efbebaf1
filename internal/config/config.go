// =============================================================================
// steam2xml - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has
// a default, so the tool runs without any configuration file at all.
//
// EXAMPLE (steam2xml.yaml):
//   log_level: info
//   atomic_write: true
//   xml:
//     indent: "  "
//     declaration: true
//   vdf:
//     indent: "\t"
//     escape_sequences: true
//     case_insensitive_lookup: false
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "steam2xml.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// LogLevel controls the verbosity of logging on stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// AtomicWrite writes output to a temporary file and renames it over the
	// destination, so a failed run never leaves a truncated file behind.
	// Default: true
	AtomicWrite *bool `yaml:"atomic_write"`

	// XML contains settings for the XML writer.
	XML XMLSettings `yaml:"xml"`

	// VDF contains settings for the VDF reader and writer.
	VDF VDFSettings `yaml:"vdf"`
}

// XMLSettings controls XML output.
type XMLSettings struct {
	// Indent is the string used for each nesting level.
	// An empty string writes the whole document on one line.
	// Default: "  " (two spaces)
	Indent *string `yaml:"indent"`

	// Declaration writes <?xml version="1.0" encoding="utf-8"?> first.
	// Default: true
	Declaration *bool `yaml:"declaration"`
}

// VDFSettings controls VDF input and output.
type VDFSettings struct {
	// Indent is the string used for each nesting level.
	// Default: "\t"
	Indent string `yaml:"indent"`

	// EscapeSequences enables \\, \", \n and \t in quoted strings.
	// Default: true
	EscapeSequences *bool `yaml:"escape_sequences"`

	// CaseInsensitiveLookup lets "language"/"tokens" match "Language"/"Tokens"
	// when no exact match exists.
	// Default: false
	CaseInsensitiveLookup *bool `yaml:"case_insensitive_lookup"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration file at path.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//   - required: When false, a missing file yields the defaults instead of an error.
//
// RETURNS:
//   - A pointer to the Config struct with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.AtomicWrite == nil {
		config.AtomicWrite = boolPtr(true)
	}
	if config.XML.Indent == nil {
		config.XML.Indent = stringPtr("  ")
	}
	if config.XML.Declaration == nil {
		config.XML.Declaration = boolPtr(true)
	}
	if config.VDF.Indent == "" {
		config.VDF.Indent = "\t"
	}
	if config.VDF.EscapeSequences == nil {
		config.VDF.EscapeSequences = boolPtr(true)
	}
	if config.VDF.CaseInsensitiveLookup == nil {
		config.VDF.CaseInsensitiveLookup = boolPtr(false)
	}
}

// validLogLevels are the levels accepted by the logging backend.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validate checks the configuration after defaults are applied.
func validate(config *Config) error {
	config.LogLevel = strings.ToLower(config.LogLevel)
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	if strings.TrimLeft(*config.XML.Indent, " \t") != "" {
		return fmt.Errorf("xml.indent must contain only spaces and tabs")
	}
	if strings.TrimLeft(config.VDF.Indent, " \t") != "" {
		return fmt.Errorf("vdf.indent must contain only spaces and tabs")
	}

	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// UseAtomicWrite reports whether output goes through a temp file and rename.
func (c *Config) UseAtomicWrite() bool {
	return c.AtomicWrite == nil || *c.AtomicWrite
}

// XMLIndent returns the XML indentation string.
func (c *Config) XMLIndent() string {
	if c.XML.Indent == nil {
		return "  "
	}
	return *c.XML.Indent
}

// XMLDeclaration reports whether the XML declaration is written.
func (c *Config) XMLDeclaration() bool {
	return c.XML.Declaration == nil || *c.XML.Declaration
}

// VDFIndent returns the VDF indentation string.
func (c *Config) VDFIndent() string {
	if c.VDF.Indent == "" {
		return "\t"
	}
	return c.VDF.Indent
}

// VDFEscapeSequences reports whether VDF escape sequences are processed.
func (c *Config) VDFEscapeSequences() bool {
	return c.VDF.EscapeSequences == nil || *c.VDF.EscapeSequences
}

// VDFCaseInsensitiveLookup reports whether Language/Tokens fall back to a
// case-insensitive match.
func (c *Config) VDFCaseInsensitiveLookup() bool {
	return c.VDF.CaseInsensitiveLookup != nil && *c.VDF.CaseInsensitiveLookup
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}
