package trust

import "strings"

// Provenance identifies how a remote hash was obtained. It strictly orders
// trust: manifest and sidecar digests are integrity metadata published by
// the release, while a direct download is self-referential.
type Provenance int

const (
	ProvenanceNone Provenance = iota
	// ProvenanceChecksumManifest: the hash came from a release-wide
	// checksum manifest (checksums.txt and friends).
	ProvenanceChecksumManifest
	// ProvenanceDigestSidecar: the hash came from a per-asset digest file
	// (<asset>.sha256 or <asset>.sha256sum).
	ProvenanceDigestSidecar
	// ProvenanceDirectDownload: the hash was computed by downloading the
	// asset itself.
	ProvenanceDirectDownload
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceChecksumManifest:
		return "checksum manifest"
	case ProvenanceDigestSidecar:
		return "digest sidecar"
	case ProvenanceDirectDownload:
		return "direct download"
	default:
		return "none"
	}
}

// Verified reports whether the provenance belongs to the verified tier.
func (p Provenance) Verified() bool {
	return p == ProvenanceChecksumManifest || p == ProvenanceDigestSidecar
}

// HashRecord is a remote content hash together with the provenance it was
// obtained through. The provenance tag is attached at creation and travels
// with the value to the final report.
type HashRecord struct {
	Value      string // lowercase hex
	Provenance Provenance
}

// NewHashRecord normalizes value to lowercase hex and tags it.
func NewHashRecord(value string, prov Provenance) *HashRecord {
	return &HashRecord{
		Value:      strings.ToLower(strings.TrimSpace(value)),
		Provenance: prov,
	}
}
