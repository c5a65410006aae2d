package release

import (
	"regexp"
	"strings"

	"github.com/relcheck/relcheck/pkg/trust"
)

// Release is the subset of the GitHub release payload relcheck consumes.
// Fetched once per run and treated as immutable afterwards.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// manifestName matches release-wide checksum manifests: checksums.txt,
// checksum.txt, SLSA-style <tool>-checksums.txt, in any case.
var manifestName = regexp.MustCompile(`(?i)checksums?\.txt$`)

// NormalizedTag returns the release tag with one leading "v" stripped.
func (r *Release) NormalizedTag() string {
	return trust.NormalizeTag(r.TagName)
}

// FindAsset returns the first asset whose name satisfies match, in listing
// order, or nil when none does.
func (r *Release) FindAsset(match func(name string) bool) *Asset {
	for i := range r.Assets {
		if match(r.Assets[i].Name) {
			return &r.Assets[i]
		}
	}
	return nil
}

// ManifestAsset locates the release-wide checksum manifest, if any.
func (r *Release) ManifestAsset() *Asset {
	return r.FindAsset(manifestName.MatchString)
}

// AssetNamed returns the asset with exactly the given name, or nil.
func (r *Release) AssetNamed(name string) *Asset {
	return r.FindAsset(func(n string) bool { return n == name })
}

// AssetByPrefix returns the first asset whose name starts with prefix,
// skipping digest sidecars so "tool-linux-x64.sha256" never shadows the
// binary it describes. Prefix comparison is case-sensitive.
func (r *Release) AssetByPrefix(prefix string) *Asset {
	return r.FindAsset(func(n string) bool {
		return strings.HasPrefix(n, prefix) && !isSidecarName(n)
	})
}

func isSidecarName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".sha256") || strings.HasSuffix(lower, ".sha256sum")
}
