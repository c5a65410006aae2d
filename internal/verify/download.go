package verify

import (
	"context"
	"fmt"
	"io"

	"github.com/relcheck/relcheck/internal/localbin"
	"github.com/relcheck/relcheck/internal/release"
	"github.com/relcheck/relcheck/pkg/trust"
)

// downloadStrategy fetches the binary asset itself and hashes it. The
// record it produces is unverified: equal hashes prove the local bytes
// match the published bytes, not that either side is authentic.
type downloadStrategy struct {
	client *release.Client
	rel    *release.Release
	ws     *workspace
	prefix string
	out    io.Writer
}

func (s *downloadStrategy) Name() string { return "direct-download" }

func (s *downloadStrategy) Resolve(ctx context.Context) (*trust.HashRecord, error) {
	asset := s.rel.AssetByPrefix(s.prefix)
	if asset == nil {
		return nil, nil
	}
	fmt.Fprintf(s.out, "direct-download: fetching %s (%s)\n", asset.Name, FormatSize(asset.Size))

	path := s.ws.path(asset.Name)
	if err := s.client.DownloadTo(ctx, asset.BrowserDownloadURL, path); err != nil {
		return nil, err
	}
	digest, err := localbin.HashFile(path)
	if err != nil {
		return nil, err
	}
	return trust.NewHashRecord(digest, trust.ProvenanceDirectDownload), nil
}
