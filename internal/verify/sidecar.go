package verify

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/relcheck/relcheck/internal/release"
	"github.com/relcheck/relcheck/pkg/trust"
)

// sidecarSuffixes are the per-asset digest file names tried in order.
var sidecarSuffixes = []string{".sha256", ".sha256sum"}

// sidecarStrategy resolves the remote hash from a digest file published
// next to the binary asset (<asset>.sha256 or <asset>.sha256sum).
type sidecarStrategy struct {
	client *release.Client
	rel    *release.Release
	ws     *workspace
	prefix string
}

func (s *sidecarStrategy) Name() string { return "digest-sidecar" }

func (s *sidecarStrategy) Resolve(ctx context.Context) (*trust.HashRecord, error) {
	asset := s.rel.AssetByPrefix(s.prefix)
	if asset == nil {
		return nil, nil
	}
	for _, suffix := range sidecarSuffixes {
		sidecar := s.rel.AssetNamed(asset.Name + suffix)
		if sidecar == nil {
			continue
		}
		path := s.ws.path(sidecar.Name)
		if err := s.client.DownloadTo(ctx, sidecar.BrowserDownloadURL, path); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path) // #nosec G304 -- path under the run workspace
		if err != nil {
			return nil, err
		}
		digest, err := parseSidecarDigest(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sidecar.Name, err)
		}
		return trust.NewHashRecord(digest, trust.ProvenanceDigestSidecar), nil
	}
	return nil, nil
}

// parseSidecarDigest takes the first token of the first line, which must be
// a full sha256 hex digest. Anything after it (the asset name in sha256sum
// output) is ignored.
func parseSidecarDigest(data []byte) (string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("digest file is empty")
	}
	line, _, _ := strings.Cut(text, "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 || !isHexDigest(fields[0], sha256HexLen) {
		return "", fmt.Errorf("first token is not a sha256 digest")
	}
	return strings.ToLower(fields[0]), nil
}
