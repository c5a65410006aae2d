package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/relcheck/relcheck/internal/release"
	"github.com/relcheck/relcheck/pkg/trust"
)

const sha256HexLen = 64

// manifestStrategy resolves the remote hash from a release-wide checksum
// manifest, the strongest integrity data a release can publish here.
type manifestStrategy struct {
	client *release.Client
	rel    *release.Release
	ws     *workspace
	prefix string
}

func (s *manifestStrategy) Name() string { return "checksum-manifest" }

func (s *manifestStrategy) Resolve(ctx context.Context) (*trust.HashRecord, error) {
	asset := s.rel.ManifestAsset()
	if asset == nil {
		return nil, nil
	}
	path := s.ws.path(asset.Name)
	if err := s.client.DownloadTo(ctx, asset.BrowserDownloadURL, path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path under the run workspace
	if err != nil {
		return nil, err
	}
	digest, ok := FindManifestDigest(data, s.prefix)
	if !ok {
		return nil, fmt.Errorf("no entry for %s in %s", s.prefix, asset.Name)
	}
	return trust.NewHashRecord(digest, trust.ProvenanceChecksumManifest), nil
}

// FindManifestDigest scans manifest lines of the form "<hex>  <filename>"
// for the platform asset prefix. An exact filename match (the prefix itself
// or prefix plus a known archive extension) wins over a loose substring
// match; within each pass the first line in file order wins, so a manifest
// listing several variants that share the prefix resolves by its own order.
// Blank lines, comments, and lines without a full sha256 digest are skipped.
func FindManifestDigest(data []byte, prefix string) (string, bool) {
	type entry struct {
		digest string
		name   string
	}
	var entries []entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if !isHexDigest(fields[0], sha256HexLen) {
			continue
		}
		entries = append(entries, entry{
			digest: strings.ToLower(fields[0]),
			name:   filepath.Base(fields[len(fields)-1]),
		})
	}

	exact := map[string]bool{
		prefix:             true,
		prefix + ".zip":    true,
		prefix + ".tar.gz": true,
	}
	for _, e := range entries {
		if exact[e.name] {
			return e.digest, true
		}
	}
	for _, e := range entries {
		if strings.Contains(e.name, prefix) {
			return e.digest, true
		}
	}
	return "", false
}

func isHexDigest(value string, expectedLen int) bool {
	if len(value) != expectedLen {
		return false
	}
	for _, ch := range value {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}
