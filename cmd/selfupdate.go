package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the repository releases are published to.
const githubRepoSlug = "giantswarm/kubectl-sandbox"

// errDevelopmentVersion is returned when the binary was not built from a release.
var errDevelopmentVersion = errors.New("cannot self-update a development version")

// newSelfUpdateCmd creates the Cobra command that replaces the running binary
// with the latest GitHub release.
func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update kubectl-sandbox to the latest version",
		Long: `Check GitHub releases for a newer kubectl-sandbox and replace the
running binary with it. Builds without a release version cannot be updated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfUpdate(cmd.Context(), cmd, rootCmd.Version)
		},
	}
}

func runSelfUpdate(ctx context.Context, cmd *cobra.Command, currentVersion string) error {
	if currentVersion == "" || currentVersion == "dev" {
		return errDevelopmentVersion
	}
	if ctx == nil {
		ctx = context.Background()
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", githubRepoSlug)
	}

	if latest.LessOrEqual(currentVersion) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kubectl-sandbox %s is up to date\n", currentVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated kubectl-sandbox from %s to %s\n", currentVersion, latest.Version())
	return nil
}
