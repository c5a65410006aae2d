package verify

import (
	"fmt"
	"io"

	"github.com/relcheck/relcheck/internal/localbin"
	"github.com/relcheck/relcheck/pkg/trust"
)

// Report is the classified result of one verification run.
type Report struct {
	Binary     *localbin.Binary
	Repo       string
	Prefix     string
	Tag        string
	TagNorm    string
	Remote     *trust.HashRecord
	Outcome    trust.Outcome
	Docker     string
	UpdateHint string
}

// Render writes the summary block to out. The verdict line goes to out for
// a verified match and to errOut otherwise, so stderr carries exactly the
// warnings and failures.
func (r *Report) Render(out, errOut io.Writer) {
	fmt.Fprintln(out, "--- result ---")
	fmt.Fprintf(out, "Outcome: %s\n", r.Outcome)
	fmt.Fprintf(out, "Local sha256:  %s\n", r.Binary.Hash)
	if r.Remote != nil && r.Remote.Provenance != trust.ProvenanceNone {
		fmt.Fprintf(out, "Remote sha256: %s (%s)\n", r.Remote.Value, r.Remote.Provenance)
	} else {
		fmt.Fprintln(out, "Remote sha256: none")
	}
	if r.Outcome == trust.OutcomeVersionMatchOnly || r.Outcome == trust.OutcomeVersionMismatch {
		fmt.Fprintf(out, "Versions: local %s, release %s\n", r.Binary.Version, r.TagNorm)
	}
	if r.Docker != "" {
		fmt.Fprintf(out, "Docker: %s\n", r.Docker)
	}
	if r.UpdateHint != "" {
		fmt.Fprintf(out, "Note: %s\n", r.UpdateHint)
	}

	verdict := r.describe()
	switch {
	case r.Outcome == trust.OutcomeMatchVerified:
		fmt.Fprintf(out, "ok: %s\n", verdict)
	case r.Outcome.Warning():
		fmt.Fprintf(errOut, "warning: %s\n", verdict)
	default:
		fmt.Fprintf(errOut, "failure: %s\n", verdict)
	}
}

func (r *Report) describe() string {
	switch r.Outcome {
	case trust.OutcomeMatchVerified:
		return fmt.Sprintf("local binary matches %s %s (%s)", r.Repo, r.Tag, r.Remote.Provenance)
	case trust.OutcomeMatchUnverified:
		return fmt.Sprintf("local binary matches the %s asset byte for byte, but no publisher checksum backs it", r.Tag)
	case trust.OutcomeVersionMatchOnly:
		return fmt.Sprintf("version %s matches tag %s, but no hash could be compared", r.Binary.Version, r.Tag)
	case trust.OutcomeHashMismatch:
		return fmt.Sprintf("local binary does not match the published %s asset", r.Tag)
	case trust.OutcomeVersionMismatch:
		return fmt.Sprintf("local version %s differs from release %s and no hash could be compared", r.Binary.Version, r.TagNorm)
	default:
		return fmt.Sprintf("no integrity data found for %s in %s %s", r.Prefix, r.Repo, r.Tag)
	}
}

// FormatSize formats a byte count for download progress lines.
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// updateHint phrases an advisory note when both versions parse as semver
// and differ. It never affects the outcome or the exit code.
func updateHint(localVersion, releaseVersion string) string {
	local, ok := trust.NormalizeSemver(localVersion)
	if !ok {
		return ""
	}
	remote, ok := trust.NormalizeSemver(releaseVersion)
	if !ok {
		return ""
	}
	cmp, err := trust.CompareSemver(local, remote)
	if err != nil || cmp == 0 {
		return ""
	}
	if cmp < 0 {
		return fmt.Sprintf("release %s is newer than local %s", releaseVersion, localVersion)
	}
	return fmt.Sprintf("local %s is ahead of release %s", localVersion, releaseVersion)
}
