// Package cli wires configuration, storage and the HTTP server into the
// healthdash command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

type rootOptions struct {
	envFile string
	stdin   *os.File
	stdout  io.Writer
	stderr  io.Writer
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func NewRootCommand() *cobra.Command {
	options := &rootOptions{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	root := &cobra.Command{
		Use:   "healthdash",
		Short: "Personal wellbeing dashboard",
		Long: `healthdash records symptoms, meals, medications and daily check-ins and
turns them into a daily wellbeing score, a trend and a list of recent entries.

Running healthdash without a subcommand starts the HTTP server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServeCommand(cmd, options)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&options.envFile, "env-file", defaultEnvFile, "dotenv file to load before reading the environment")

	root.AddCommand(
		newServeCommand(options),
		newSummaryCommand(options),
		newImportCommand(options),
		newResetPasswordCommand(options),
		newSetPasswordCommand(options),
	)
	return root
}

func (options *rootOptions) printf(format string, args ...any) {
	fmt.Fprintf(options.stdout, format, args...)
}
