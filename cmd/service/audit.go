package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebook/internal/app"
)

func newAuditCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Report quotes and comments whose references no longer resolve",
		Long: "audit reads every collection and prints a JSON report of orphaned quotes and comments.\n" +
			"It exits non-zero when any orphan is found. Detached comments alone do not fail the audit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return audit(cmd.Context(), f, cmd.OutOrStdout())
		},
	}
}

func audit(ctx context.Context, f *flags, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	store, err := openStore(&cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	report, err := app.NewService(app.ServiceConfig{Store: store, Logger: logger}).Audit(ctx)
	if err != nil {
		return err
	}

	return writeReport(out, report)
}

func writeReport(out io.Writer, report app.AuditReport) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if n := len(report.Orphans); n > 0 {
		return fmt.Errorf("audit found %d orphaned records", n)
	}

	return nil
}
