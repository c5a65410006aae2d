package platform

import (
	"fmt"
	"runtime"
)

// Key identifies a release platform after normalization.
type Key struct {
	OS   string
	Arch string
}

// Upstream asset names use their own platform vocabulary rather than Go's.
// Unknown identifiers pass through unchanged, so a new platform degrades to
// a visible lookup miss instead of an error.
var osNames = map[string]string{
	"darwin":  "osx",
	"macos":   "osx",
	"windows": "win",
	"linux":   "linux",
}

var archNames = map[string]string{
	"amd64":   "x64",
	"x86_64":  "x64",
	"arm64":   "arm64",
	"aarch64": "arm64",
	"386":     "x86",
	"i386":    "x86",
	"i686":    "x86",
}

// NormalizeOS maps a raw operating system identifier to the upstream naming.
func NormalizeOS(os string) string {
	if v, ok := osNames[os]; ok {
		return v
	}
	return os
}

// NormalizeArch maps a raw architecture identifier to the upstream naming.
func NormalizeArch(arch string) string {
	if v, ok := archNames[arch]; ok {
		return v
	}
	return arch
}

// Detect computes the Key for the running process. The result is constant
// for the process lifetime.
func Detect() Key {
	return Key{OS: NormalizeOS(runtime.GOOS), Arch: NormalizeArch(runtime.GOARCH)}
}

func (k Key) String() string {
	return k.OS + "/" + k.Arch
}

// AssetPrefix composes the expected asset filename prefix for a tool on a
// platform, e.g. "cyclonedx-linux-x64". Several assets may share the prefix
// (archive variants next to the bare binary); callers resolve that by
// release listing order.
func AssetPrefix(tool string, k Key) string {
	return fmt.Sprintf("%s-%s-%s", tool, k.OS, k.Arch)
}
