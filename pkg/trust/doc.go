// Package trust classifies verification runs, dependency-free.
//
// Given a locally computed hash, an optional remote HashRecord, and the
// version-fallback inputs, Classify produces exactly one Outcome, and every
// Outcome maps to a stable exit code (0 verified, 10 warning, 1 failure).
//
// Provenance is fixed when a HashRecord is created and never upgrades: a
// hash obtained by downloading the asset itself proves only that the
// download is internally consistent, so it stays in the unverified tier no
// matter how the comparison turns out.
//
// This package intentionally performs no I/O. Resolving hashes, fetching
// releases, and rendering reports belong to the callers.
package trust
