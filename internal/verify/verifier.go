package verify

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/localbin"
	"github.com/relcheck/relcheck/internal/platform"
	"github.com/relcheck/relcheck/internal/probe"
	"github.com/relcheck/relcheck/internal/release"
	"github.com/relcheck/relcheck/pkg/trust"
)

// Options configures a single verification run.
type Options struct {
	Repo              string // owner/name
	Tool              string // local command name and asset prefix stem
	BinPath           string // explicit local path; empty means PATH lookup
	VersionArg        string // defaults to --version
	Strict            bool   // verified tiers only, no version fallback
	AllowVersionMatch bool   // version fallback when no hash was obtained
	SkipProbe         bool
	ProbeBin          string // defaults to docker
}

// Verifier drives one run: inspect the local binary, fetch release
// metadata, walk the strategy chain, classify the outcome.
type Verifier struct {
	client *release.Client
	opts   Options
	out    io.Writer
	log    *zap.Logger
}

func New(client *release.Client, opts Options, out io.Writer, log *zap.Logger) *Verifier {
	if opts.VersionArg == "" {
		opts.VersionArg = "--version"
	}
	if opts.ProbeBin == "" {
		opts.ProbeBin = "docker"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{client: client, opts: opts, out: out, log: log}
}

// Run executes the verification. The returned error covers fatal
// conditions only (unresolvable binary, failed metadata fetch,
// interruption); mismatches and missing integrity data are encoded in the
// report's outcome.
func (v *Verifier) Run(ctx context.Context) (*Report, error) {
	var dockerCh <-chan string
	if !v.opts.SkipProbe {
		dockerCh = probe.Docker(ctx, v.opts.ProbeBin, v.log)
	}

	bin, err := localbin.Inspect(ctx, v.opts.BinPath, v.opts.Tool, v.opts.VersionArg, v.log)
	if err != nil {
		return nil, err
	}

	prefix := platform.AssetPrefix(v.opts.Tool, platform.Detect())
	fmt.Fprintf(v.out, "Local binary: %s\n", bin.Path)
	fmt.Fprintf(v.out, "Local sha256: %s\n", bin.Hash)
	fmt.Fprintf(v.out, "Local version: %s\n", bin.Version)
	fmt.Fprintf(v.out, "Host: %s\n", platform.Describe(ctx))
	fmt.Fprintf(v.out, "Asset prefix: %s\n", prefix)

	rel, err := v.client.Latest(ctx, v.opts.Repo)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(v.out, "Latest release: %s (%d assets)\n", rel.TagName, len(rel.Assets))

	ws, err := newWorkspace()
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer ws.Close()

	record := v.resolveRemote(ctx, rel, ws, prefix)
	if record == nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := v.opts.AllowVersionMatch && !v.opts.Strict
	outcome := trust.Classify(trust.Input{
		LocalHash:       bin.Hash,
		Remote:          record,
		VersionFallback: fallback,
		LocalVersion:    bin.Version,
		ReleaseVersion:  rel.NormalizedTag(),
	})

	docker := ""
	if dockerCh != nil {
		docker = <-dockerCh
	}

	return &Report{
		Binary:     bin,
		Repo:       v.opts.Repo,
		Prefix:     prefix,
		Tag:        rel.TagName,
		TagNorm:    rel.NormalizedTag(),
		Remote:     record,
		Outcome:    outcome,
		Docker:     docker,
		UpdateHint: updateHint(bin.Version, rel.NormalizedTag()),
	}, nil
}

// strategies assembles the chain in trust order. Strict mode ends the
// chain after the verified tiers.
func (v *Verifier) strategies(rel *release.Release, ws *workspace, prefix string) []Strategy {
	chain := []Strategy{
		&manifestStrategy{client: v.client, rel: rel, ws: ws, prefix: prefix},
		&sidecarStrategy{client: v.client, rel: rel, ws: ws, prefix: prefix},
	}
	if !v.opts.Strict {
		chain = append(chain, &downloadStrategy{client: v.client, rel: rel, ws: ws, prefix: prefix, out: v.out})
	}
	return chain
}

// resolveRemote walks the chain and stops at the first record. Misses are
// reported and fall through; they never abort the run.
func (v *Verifier) resolveRemote(ctx context.Context, rel *release.Release, ws *workspace, prefix string) *trust.HashRecord {
	for _, s := range v.strategies(rel, ws, prefix) {
		record, err := s.Resolve(ctx)
		if err != nil {
			fmt.Fprintf(v.out, "%s: no result (%v)\n", s.Name(), err)
			v.log.Info("strategy missed",
				zap.String("strategy", s.Name()),
				zap.Error(err))
			continue
		}
		if record == nil {
			fmt.Fprintf(v.out, "%s: nothing to try\n", s.Name())
			continue
		}
		fmt.Fprintf(v.out, "%s: remote sha256 %s\n", s.Name(), record.Value)
		return record
	}
	return nil
}
