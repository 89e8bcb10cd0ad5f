package cli

import (
	"errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// logger is the process-wide structured logger. It writes to stderr so that
// stdout stays reserved for reports and hook decisions.
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Level:           charmlog.WarnLevel,
})

// ExitError carries a process exit code without an error message. Commands
// return it once their output has already been written.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "testguard",
		Short: "Catch AI assistants gaming your tests",
		Long:  "testguard compares two versions of a JavaScript or TypeScript test file and flags weakened assertions, removed test logic, skipped tests and adjusted expectations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			} else {
				logger.SetLevel(charmlog.WarnLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newBaselineCmd())
	cmd.AddCommand(newHookCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newHistoryCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// ExitCode maps an error returned by Execute to a process exit code,
// logging anything that is not an ExitError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	logger.Error(err)
	return 1
}
