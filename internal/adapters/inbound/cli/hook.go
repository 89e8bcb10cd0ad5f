package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/testguard/internal/adapters/inbound/hook"
	"github.com/abdidvp/testguard/internal/application"
)

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Assistant hook handlers",
		Long:  "Handlers invoked by an AI coding assistant's hook system. They read the event payload from stdin.",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newHookPreToolUseCmd())
	return cmd
}

func newHookPreToolUseCmd() *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "pre-tool-use",
		Short: "Review an Edit, MultiEdit or Write before it is applied",
		Long: `Reads a PreToolUse payload from stdin and, when the change manipulates a test,
writes a deny (block mode) or ask (warn mode) decision to stdout. With
--exit-code a denial is reported on stderr with exit status 2 instead.
Failures inside testguard never block the edit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			call, err := hook.Read(cmd.InOrStdin())
			if errors.Is(err, hook.ErrPayloadTooLarge) {
				logger.Warn("hook payload too large, allowing", "err", err)
				return nil
			}
			if err != nil {
				logger.Warn("unreadable hook payload, allowing", "err", err)
				return nil
			}

			res := newHookService().Evaluate(call)
			if exitCode && res.Decision == application.DecisionDeny {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Reason)
				return &ExitError{Code: 2}
			}
			return hook.Write(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Report denials with exit status 2 and the reason on stderr")

	return cmd
}
