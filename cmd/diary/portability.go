package diary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fooddiary/internal/ledger"
)

var (
	exportOut string
	importIn  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the diary as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			snap, err := l.Export(ctx)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export json: %w", err)
			}
			if strings.TrimSpace(exportOut) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if err := os.WriteFile(exportOut, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the diary with a JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--file is required")
		}
		b, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var snap ledger.Snapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			return fmt.Errorf("parse import json: %w", err)
		}
		return withLedger(cmd, func(ctx context.Context, l *ledger.Ledger) error {
			if err := l.Import(ctx, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "file", "", "JSON file produced by export")
}
