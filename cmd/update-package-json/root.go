package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/pkgrewrite"
	"github.com/spf13/cobra"
)

const commandName = "update-package-json"

// usageError is reported on stdout with exit status 1, before any file access.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// requirePath accepts one positional path. Extra arguments are ignored.
func requirePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return &usageError{msg: commandName + " missing args"}
	}
	return nil
}

// newRootCmd builds the command. Logs go to errOut; usage errors to out.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var verbose bool
	var logger *slog.Logger

	cmd := &cobra.Command{
		Use:   commandName + " <path>",
		Short: "Rename a package manifest to sejong-buffer and drop its files list",
		Long: `update-package-json rewrites the package.json generated by the npm build.
It sets "name" to "sejong-buffer", removes "files" if present and writes
the document back with two-space indentation. Other fields are kept as is.`,
		Version:       strings.TrimSpace(pkgrewrite.Version),
		Args:          requirePath,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger = slog.New(slog.NewTextHandler(errOut, opts))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if len(args) > 1 {
				logger.Debug("ignoring extra arguments", "args", args[1:])
			}

			svc, err := pkgrewrite.New(pkgrewrite.WithLogger(logger))
			if err != nil {
				return err
			}

			res, err := svc.Rewrite(cmd.Context(), path)
			if err != nil {
				return err
			}

			logger.Debug("rewrite complete", "state", svc.State(), "dropped", res.Changes.Dropped)
			return nil
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

// execute runs the command with args and returns the process exit status.
func execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(out, usage.msg)
			return 1
		}
		fmt.Fprintf(errOut, "%s: %v\n", commandName, err)
		return 1
	}
	return 0
}
