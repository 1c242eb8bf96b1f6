// Command cdrdecode decodes BER/DER-encoded CDR files into JSONL, driven by
// a compiled ASN.1 schema (spec §6.1).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.cdrtool.dev/cdr/driver"
	intlog "go.cdrtool.dev/cdr/internal/log"
	"go.cdrtool.dev/cdr/schema"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:   "cdrdecode [flags] <file-or-dir> [file-or-dir ...]",
		Short: "Decode BER/DER CDR files to JSONL using a compiled ASN.1 schema",
		Args:  cobra.MinimumNArgs(1),

		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *Config, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	handler, err := intlog.NewFromStrings(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger := newLogger(handler)

	s, err := loadSchema(cfg)
	if err != nil {
		return err
	}

	if _, kind := s.KindOf(cfg.RootType); kind == schema.KindUnknown {
		return fmt.Errorf("unknown root type %q", cfg.RootType)
	}

	driverCfg := driver.Config{
		Schema:    s,
		RootType:  cfg.RootType,
		OutputDir: cfg.OutputDir,
		Ext:       cfg.ExtList(),
	}

	reports, err := driver.Run(context.Background(), driverCfg, args)
	if err != nil {
		return err
	}

	for _, rep := range reports {
		if rep.Err != nil {
			logger.Error("file failed", "file", rep.File, "error", rep.Err)
			continue
		}
		logger.Info("file decoded", "file", rep.File, "records", rep.Records)
	}

	// Exit 0 on success even if some files failed; only fatal configuration
	// errors above produce a nonzero exit (spec §6.1).
	return nil
}

func loadSchema(cfg *Config) (*schema.Schema, error) {
	if cfg.LoadCompiledPath != "" {
		s, err := schema.Load(cfg.LoadCompiledPath)
		if err != nil {
			return nil, fmt.Errorf("load compiled schema: %w", err)
		}
		return s, nil
	}

	text, err := os.ReadFile(cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.Compile(string(text))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if cfg.CompileSchemaPath != "" {
		if err := schema.Save(s, cfg.CompileSchemaPath); err != nil {
			return nil, fmt.Errorf("save compiled schema: %w", err)
		}
	}
	return s, nil
}
