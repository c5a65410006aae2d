package trust

import "strings"

// Outcome is the terminal state of a verification run. Exactly one is
// produced per run.
type Outcome int

const (
	OutcomeNoData Outcome = iota
	OutcomeMatchVerified
	OutcomeMatchUnverified
	OutcomeVersionMatchOnly
	OutcomeHashMismatch
	OutcomeVersionMismatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatchVerified:
		return "verified-match"
	case OutcomeMatchUnverified:
		return "unverified-match"
	case OutcomeVersionMatchOnly:
		return "version-match-only"
	case OutcomeHashMismatch:
		return "hash-mismatch"
	case OutcomeVersionMismatch:
		return "version-mismatch"
	default:
		return "no-data"
	}
}

// Exit codes form the contract with scripted callers: the three signal
// classes must stay distinguishable.
const (
	ExitVerified = 0
	ExitWarning  = 10
	ExitFailure  = 1
)

// ExitCode maps the outcome to its exit signal class.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeMatchVerified:
		return ExitVerified
	case OutcomeMatchUnverified, OutcomeVersionMatchOnly:
		return ExitWarning
	default:
		return ExitFailure
	}
}

// Warning reports whether the run passed only through a weak-trust path.
func (o Outcome) Warning() bool {
	return o == OutcomeMatchUnverified || o == OutcomeVersionMatchOnly
}

// Input carries everything the classifier consumes.
type Input struct {
	LocalHash       string
	Remote          *HashRecord
	VersionFallback bool   // version-string comparison enabled
	LocalVersion    string // normalized local version
	ReleaseVersion  string // normalized release tag
}

// Classify maps the comparison inputs to an Outcome. The mapping is
// deterministic and total:
//
//   - remote hash present, equal, verified tier   -> MatchVerified
//   - remote hash present, equal, unverified tier -> MatchUnverified
//   - remote hash present, unequal                -> HashMismatch
//   - no hash, fallback on, versions equal        -> VersionMatchOnly
//   - no hash, fallback on, versions differ       -> VersionMismatch
//   - no hash, fallback off                       -> NoData
//
// Hash equality is case-insensitive over hex strings; version equality is
// case-sensitive and exact. A record without provenance counts as absent.
func Classify(in Input) Outcome {
	if in.Remote != nil && in.Remote.Value != "" && in.Remote.Provenance != ProvenanceNone {
		if !strings.EqualFold(in.LocalHash, in.Remote.Value) {
			return OutcomeHashMismatch
		}
		if in.Remote.Provenance.Verified() {
			return OutcomeMatchVerified
		}
		return OutcomeMatchUnverified
	}
	if in.VersionFallback {
		if in.LocalVersion == in.ReleaseVersion {
			return OutcomeVersionMatchOnly
		}
		return OutcomeVersionMismatch
	}
	return OutcomeNoData
}
