package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
	"github.com/giantswarm/kubectl-sandbox/internal/kubectl"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
	"github.com/giantswarm/kubectl-sandbox/internal/server"
)

// errCommandFailed is returned after a failed command's message has been printed.
var errCommandFailed = errors.New("command failed")

// newExecCmd creates the Cobra command that runs a single simulated command.
func newExecCmd() *cobra.Command {
	var (
		catalogPath string
		namespace   string
		debugMode   bool
	)

	cmd := &cobra.Command{
		Use:   "exec [flags] kubectl <args...>",
		Short: "Run one kubectl command against the simulated cluster",
		Long: `Run one kubectl command against the simulated cluster and print its output.

Flags for exec itself must come before the command; everything from the
first positional argument on is passed through untouched, including -n and
--namespace.

Examples:
  kubectl-sandbox exec kubectl get pods
  kubectl-sandbox exec --catalog ./catalog.yaml kubectl describe pod web-app -n staging`,
		Args: cobra.MinimumNArgs(1),
		// The command's own error output is the user-facing message.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("catalog") {
				loadEnvIfEmpty(&catalogPath, envCatalog)
			}
			return runExec(cmd, strings.Join(args, " "), catalogPath, namespace, debugMode)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML or JSON catalog file (can also be set via KUBECTL_SANDBOX_CATALOG env var; default: built-in catalog)")
	cmd.Flags().StringVar(&namespace, "default-namespace", catalog.DefaultNamespace, "Namespace used when the command names none")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log the execution to stderr")

	return cmd
}

func runExec(cmd *cobra.Command, raw, catalogPath, namespace string, debugMode bool) error {
	level := "warn"
	if debugMode {
		level = "debug"
	}
	logger, err := logging.NewLogger(level, logging.FormatText, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	c, err := loadCatalog(catalogPath)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sc, err := server.NewServerContext(ctx,
		server.WithCatalog(c),
		server.WithLogger(logging.NewSlogAdapter(logger)),
		server.WithDefaultNamespace(namespace),
	)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	defer func() { _ = sc.Shutdown() }()

	result := sc.RunCommand(ctx, server.TransportCLI, raw, "")
	if !result.Success {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), result.Error)
		if result.Err != nil {
			return fmt.Errorf("%w: %w", errCommandFailed, result.Err)
		}
		return errCommandFailed
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(result.Output, "\n"))
	return nil
}

// exitCode maps a command error onto a process exit code: 2 for input
// that was never a kubectl command, 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, kubectl.ErrInvalidCommandPrefix) {
		return 2
	}
	return 1
}
