// Package cli implements the command-line interface of datatable.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/domonda/go-datatable/internal/logging"
)

// version is set at build time
var version = "development version"

// DoCLI reads the command-line arguments and runs the appropriate
// command, then exits the process with a non zero code on errors.
func DoCLI() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd returns the root command and a function
// closing the logger set up by the command.
func newRootCmd() (*cobra.Command, func()) {
	var (
		logLevel string
		seqURL   string
		closeLog = func() {}
	)

	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "datatable",
		Short:         "Render data table definitions as HTML",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			var logger *slog.Logger
			logger, closeLog = logging.SetupLogger(logging.Config{
				Output: cmd.ErrOrStderr(),
				Level:  level,
				SeqURL: seqURL,
			})
			slog.SetDefault(logger)
			return nil
		},
	}
	rootCmd.SetVersionTemplate(`{{.Version}}` + "\n")
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", `log level ("debug", "info", "warn" or "error")`,
	)
	rootCmd.PersistentFlags().StringVar(
		&seqURL, "seq-url", "", "also send log records to the Seq server at this URL",
	)

	rootCmd.AddCommand(newRenderCmd())
	return rootCmd, func() { closeLog() }
}

// Execute runs the root command with args
// and reports errors to the error output of the command.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, closeLog := newRootCmd()
	defer closeLog()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return err
}
