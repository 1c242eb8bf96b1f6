package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds the CLI flag names, so tests and completions can reference
// them by name rather than by string literal.
type Flags struct {
	Schema        string
	LoadCompiled  string
	CompileSchema string
	RootType      string
	OutputDir     string
	Ext           string
	LogLevel      string
	LogFormat     string
}

// Config holds parsed CLI flag values (spec §6.1).
type Config struct {
	Flags Flags

	SchemaPath        string
	LoadCompiledPath  string
	CompileSchemaPath string
	RootType          string
	OutputDir         string
	Ext               string
	LogLevel          string
	LogFormat         string
}

// NewConfig returns a Config with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Schema:        "schema",
			LoadCompiled:  "load-compiled",
			CompileSchema: "compile-schema",
			RootType:      "root-type",
			OutputDir:     "output-dir",
			Ext:           "ext",
			LogLevel:      "log-level",
			LogFormat:     "log-format",
		},
		LogLevel:  "info",
		LogFormat: "logfmt",
	}
}

// RegisterFlags adds cdrdecode's flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.SchemaPath, c.Flags.Schema, "",
		"path to a textual ASN.1 module to compile")
	flags.StringVar(&c.LoadCompiledPath, c.Flags.LoadCompiled, "",
		"path to a previously compiled schema blob, as an alternative to --schema")
	flags.StringVar(&c.CompileSchemaPath, c.Flags.CompileSchema, "",
		"after parsing --schema, write the compiled schema blob to this path")
	flags.StringVar(&c.RootType, c.Flags.RootType, "",
		"name of the top-level record type (required)")
	flags.StringVar(&c.OutputDir, c.Flags.OutputDir, "",
		"directory to write <input>.jsonl files into (required, created if absent)")
	flags.StringVar(&c.Ext, c.Flags.Ext, "",
		"comma-separated list of input file extensions to accept (default: all files)")
	flags.StringVar(&c.LogLevel, c.Flags.LogLevel, c.LogLevel,
		"log level: debug, info, warn, error")
	flags.StringVar(&c.LogFormat, c.Flags.LogFormat, c.LogFormat,
		"log format: logfmt, json")
}

// Validate checks the fatal-configuration preconditions of spec §6.1/§7
// class 1 that don't require touching the filesystem or compiling a schema.
func (c *Config) Validate() error {
	if c.SchemaPath == "" && c.LoadCompiledPath == "" {
		return fmt.Errorf("one of --%s or --%s is required", c.Flags.Schema, c.Flags.LoadCompiled)
	}
	if c.SchemaPath != "" && c.LoadCompiledPath != "" {
		return fmt.Errorf("--%s and --%s are mutually exclusive", c.Flags.Schema, c.Flags.LoadCompiled)
	}
	if c.RootType == "" {
		return fmt.Errorf("--%s is required", c.Flags.RootType)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("--%s is required", c.Flags.OutputDir)
	}
	return nil
}

// ExtList splits Ext on commas, trims whitespace, and drops empty entries.
func (c *Config) ExtList() []string {
	if c.Ext == "" {
		return nil
	}
	parts := strings.Split(c.Ext, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
