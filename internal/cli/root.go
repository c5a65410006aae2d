// Package cli wires the relcheck command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/logging"
	"github.com/relcheck/relcheck/internal/release"
	"github.com/relcheck/relcheck/internal/verify"
	"github.com/relcheck/relcheck/pkg/trust"
)

const (
	defaultRepo    = "CycloneDX/cyclonedx-cli"
	defaultTimeout = 30 * time.Second
)

// exitError carries a non-zero outcome exit code through cobra's error
// path without printing anything: the report already spoke.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return trust.ExitFailure
	}
	return trust.ExitVerified
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:   "relcheck",
		Short: "Verify a locally installed binary against its upstream GitHub release",
		Long: `relcheck compares the binary installed on this machine against the latest
upstream GitHub release, preferring published integrity metadata (a checksum
manifest or a per-asset digest file) and falling back to downloading the
asset itself. The exit code reports the trust tier of the match: 0 for a
verified match, 10 for a match reached only through an unverified path, 1
for a mismatch or missing data.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(v.GetString("log-level"), v.GetString("log-format"))
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), v, logger, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.String("bin", "", "explicit path to the local binary")
	flags.String("repo", defaultRepo, "upstream repository (owner/name)")
	flags.String("tool", "", "tool name (default: repository tail, -cli/-bin trimmed)")
	flags.Bool("no-docker", false, "skip the container runtime probe")
	flags.String("docker-bin", "docker", "container runtime executable to probe")
	flags.Bool("strict", false, "verified integrity tiers only, no fallbacks")
	flags.Bool("allow-version-match", false, "fall back to version-string comparison when no hash is available")
	flags.String("version-arg", "--version", "argument that asks the local binary its version")
	flags.Duration("timeout", defaultTimeout, "HTTP timeout for release API calls")

	persistent := cmd.PersistentFlags()
	persistent.String("log-level", "warn", "log level (debug, info, warn, error)")
	persistent.String("log-format", "console", "log format (console, json)")

	for _, name := range []string{
		"bin", "repo", "tool", "no-docker", "docker-bin",
		"strict", "allow-version-match", "version-arg", "timeout",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	_ = v.BindPFlag("log-level", persistent.Lookup("log-level"))
	_ = v.BindPFlag("log-format", persistent.Lookup("log-format"))

	// RELCHECK_API_BASE and friends; api-base stays env-only.
	v.SetEnvPrefix("RELCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.AddCommand(newVersionCmd(stdout))
	return cmd
}

func runVerify(ctx context.Context, v *viper.Viper, logger *zap.Logger, stdout, stderr io.Writer) error {
	repo := v.GetString("repo")
	if !strings.Contains(repo, "/") {
		return fmt.Errorf("--repo must be owner/name, got %q", repo)
	}
	tool := v.GetString("tool")
	if tool == "" {
		tool = deriveToolName(repo)
	}

	client := release.NewClient(
		v.GetString("api-base"),
		release.UserAgent(buildVersion),
		v.GetDuration("timeout"),
		logger,
	)

	verifier := verify.New(client, verify.Options{
		Repo:              repo,
		Tool:              tool,
		BinPath:           v.GetString("bin"),
		VersionArg:        v.GetString("version-arg"),
		Strict:            v.GetBool("strict"),
		AllowVersionMatch: v.GetBool("allow-version-match"),
		SkipProbe:         v.GetBool("no-docker"),
		ProbeBin:          v.GetString("docker-bin"),
	}, stdout, logger)

	report, err := verifier.Run(ctx)
	if err != nil {
		return err
	}
	report.Render(stdout, stderr)
	if code := report.Outcome.ExitCode(); code != trust.ExitVerified {
		return &exitError{code: code}
	}
	return nil
}

// deriveToolName guesses the installed command name from the repository
// tail: CycloneDX/cyclonedx-cli installs cyclonedx.
func deriveToolName(repo string) string {
	name := repo
	if i := strings.LastIndex(repo, "/"); i >= 0 {
		name = repo[i+1:]
	}
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, "-cli")
	name = strings.TrimSuffix(name, "-bin")
	return name
}
