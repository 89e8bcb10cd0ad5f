package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/testguard/internal/adapters/outbound/report"
	"github.com/abdidvp/testguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/testguard/internal/application"
	"github.com/abdidvp/testguard/internal/domain"
)

func newDetectCmd() *cobra.Command {
	var (
		files  bool
		pretty bool
		path   string
	)

	cmd := &cobra.Command{
		Use:   "detect OLD NEW [FILE]",
		Short: "Compare two versions of a test file",
		Long: `Compare the old and new content of a test file and print the report as JSON.
OLD and NEW are literal source text unless --files is given, in which case they
are paths to read. FILE labels the report. Exits 1 when manipulation is found.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := readEdit(args, files)
			if err != nil {
				return err
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			r, err := newDetectService(false).Detect(absPath, edit, application.SourceCLI)
			if err != nil {
				return fmt.Errorf("detection failed: %w", err)
			}

			if pretty {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(r))
			} else if err := report.WriteJSON(cmd.OutOrStdout(), r); err != nil {
				return err
			}

			if !r.Clean() {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&files, "files", false, "Treat OLD and NEW as file paths")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render a terminal report instead of JSON")
	cmd.Flags().StringVar(&path, "path", ".", "Project path whose .testguard.yaml applies")

	return cmd
}

func readEdit(args []string, files bool) (domain.FileEdit, error) {
	edit := domain.FileEdit{OldContent: args[0], NewContent: args[1]}
	if len(args) == 3 {
		edit.Path = args[2]
	}
	if !files {
		return edit, nil
	}

	oldData, err := os.ReadFile(args[0])
	if err != nil {
		return domain.FileEdit{}, fmt.Errorf("reading old file: %w", err)
	}
	newData, err := os.ReadFile(args[1])
	if err != nil {
		return domain.FileEdit{}, fmt.Errorf("reading new file: %w", err)
	}
	edit.OldContent, edit.NewContent = string(oldData), string(newData)
	if edit.Path == "" {
		edit.Path = args[1]
	}
	return edit, nil
}
