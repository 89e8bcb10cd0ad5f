package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/testguard/internal/adapters/outbound/report"
	"github.com/abdidvp/testguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/testguard/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		baseline   bool
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check modified test files in the working tree",
		Long: `Compare every modified test file in the git working tree with its HEAD version.
With --baseline the comparison is against the snapshot taken by
"testguard baseline save" instead, which works without git.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}

			svc := newCheckService()
			var reports []*domain.Report
			if baseline {
				reports, err = svc.CheckBaseline(absPath)
			} else {
				reports, err = svc.CheckWorktree(absPath)
			}
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput {
				if err := report.WriteCheckJSON(cmd.OutOrStdout(), reports, version); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckReport(reports))
			}

			if ciMode && manipulated(reports) > 0 {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any test file was manipulated")
	cmd.Flags().BoolVar(&baseline, "baseline", false, "Compare against the saved baseline instead of git HEAD")

	return cmd
}

func manipulated(reports []*domain.Report) int {
	n := 0
	for _, r := range reports {
		if !r.Clean() {
			n++
		}
	}
	return n
}

func newBaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the test file snapshot used by check --baseline",
	}
	cmd.AddCommand(newBaselineSaveCmd())
	cmd.AddCommand(newBaselineClearCmd())
	return cmd
}

func newBaselineSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [path]",
		Short: "Snapshot every test file in the project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}
			b, err := newCheckService().SaveBaseline(absPath)
			if err != nil {
				return fmt.Errorf("saving baseline: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved baseline of %d test files.\n", len(b.Files))
			return nil
		},
	}
}

func newBaselineClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [path]",
		Short: "Remove the saved snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}
			if err := newCheckService().ClearBaseline(absPath); err != nil {
				return fmt.Errorf("clearing baseline: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Baseline cleared.")
			return nil
		},
	}
}

func projectArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}
