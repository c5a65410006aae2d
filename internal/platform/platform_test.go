package platform

import (
	"context"
	"strings"
	"testing"
)

func TestNormalizeOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"darwin", "osx"},
		{"macos", "osx"},
		{"windows", "win"},
		{"linux", "linux"},
		{"freebsd", "freebsd"}, // unknown passes through
		{"plan9", "plan9"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeOS(tt.input); got != tt.want {
				t.Fatalf("NormalizeOS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"amd64", "x64"},
		{"x86_64", "x64"},
		{"arm64", "arm64"},
		{"aarch64", "arm64"},
		{"386", "x86"},
		{"i386", "x86"},
		{"i686", "x86"},
		{"riscv64", "riscv64"}, // unknown passes through
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeArch(tt.input); got != tt.want {
				t.Fatalf("NormalizeArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectIsStable(t *testing.T) {
	t.Parallel()

	first := Detect()
	second := Detect()
	if first != second {
		t.Fatalf("Detect not stable: %v then %v", first, second)
	}
	if first.OS == "" || first.Arch == "" {
		t.Fatalf("Detect returned empty fields: %+v", first)
	}
}

func TestAssetPrefix(t *testing.T) {
	t.Parallel()

	got := AssetPrefix("cyclonedx", Key{OS: "linux", Arch: "x64"})
	if got != "cyclonedx-linux-x64" {
		t.Fatalf("AssetPrefix = %q, want %q", got, "cyclonedx-linux-x64")
	}

	got = AssetPrefix("cyclonedx", Key{OS: "osx", Arch: "arm64"})
	if got != "cyclonedx-osx-arm64" {
		t.Fatalf("AssetPrefix = %q, want %q", got, "cyclonedx-osx-arm64")
	}
}

func TestDescribeFallsBackToRuntime(t *testing.T) {
	t.Parallel()

	got := Describe(context.Background())
	if !strings.Contains(got, "/") {
		t.Fatalf("Describe = %q, want it to carry an os/arch pair", got)
	}
}
