package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/testguard/internal/adapters/outbound/report"
	"github.com/abdidvp/testguard/internal/adapters/outbound/tui"
)

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the effective detection rules",
		Long:  "Print the matcher classes, suspicious literals, avoidance patterns and mocking patterns after merging the project's .testguard.yaml over the defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}
			cfg, err := newDetectService(false).Rules(absPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := report.Schema
			if check {
				s = report.CheckSchema
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Print the schema of check --json instead")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "List recorded detections, newest first",
		Long:  "List detections recorded in .testguard/history.db. Recording is enabled with \"history: true\" in .testguard.yaml.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}
			entries, err := newDetectService(false).History(absPath, limit)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
