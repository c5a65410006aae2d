package verify

import (
	"strings"
	"testing"
)

func TestFindManifestDigest(t *testing.T) {
	t.Parallel()

	digestA := strings.Repeat("a", 64)
	digestB := strings.Repeat("b", 64)
	digestC := strings.Repeat("c", 64)

	tests := []struct {
		name     string
		manifest string
		prefix   string
		want     string
		found    bool
	}{
		{
			name:     "exact bare name",
			manifest: digestA + "  cyclonedx-linux-x64\n",
			prefix:   "cyclonedx-linux-x64",
			want:     digestA,
			found:    true,
		},
		{
			name:     "exact tar.gz",
			manifest: digestA + "  cyclonedx-linux-x64.tar.gz\n",
			prefix:   "cyclonedx-linux-x64",
			want:     digestA,
			found:    true,
		},
		{
			name:     "exact zip",
			manifest: digestA + "  cyclonedx-win-x64.zip\n",
			prefix:   "cyclonedx-win-x64",
			want:     digestA,
			found:    true,
		},
		{
			name: "exact wins over an earlier loose match",
			manifest: digestB + "  cyclonedx-linux-x64-musl.tar.gz\n" +
				digestA + "  cyclonedx-linux-x64.tar.gz\n",
			prefix: "cyclonedx-linux-x64",
			want:   digestA,
			found:  true,
		},
		{
			name: "loose matches resolve by file order",
			manifest: digestB + "  cyclonedx-linux-x64-musl.tar.gz\n" +
				digestC + "  cyclonedx-linux-x64-static.tar.gz\n",
			prefix: "cyclonedx-linux-x64",
			want:   digestB,
			found:  true,
		},
		{
			name:     "path components stripped from filenames",
			manifest: digestA + "  dist/cyclonedx-linux-x64.tar.gz\n",
			prefix:   "cyclonedx-linux-x64",
			want:     digestA,
			found:    true,
		},
		{
			name: "comments and malformed lines skipped",
			manifest: "# release checksums\n\n" +
				"not-a-digest  cyclonedx-linux-x64.tar.gz\n" +
				"deadbeef  cyclonedx-linux-x64.tar.gz\n" +
				digestA + "  cyclonedx-linux-x64.tar.gz\n",
			prefix: "cyclonedx-linux-x64",
			want:   digestA,
			found:  true,
		},
		{
			name:     "uppercase digest normalized to lowercase",
			manifest: strings.ToUpper(digestA) + "  cyclonedx-linux-x64.tar.gz\n",
			prefix:   "cyclonedx-linux-x64",
			want:     digestA,
			found:    true,
		},
		{
			name:     "no entry for the prefix",
			manifest: digestA + "  cyclonedx-win-x64.zip\n",
			prefix:   "cyclonedx-linux-x64",
			found:    false,
		},
		{
			name:     "digest without a filename skipped",
			manifest: digestA + "\n",
			prefix:   "cyclonedx-linux-x64",
			found:    false,
		},
		{
			name:     "empty manifest",
			manifest: "",
			prefix:   "cyclonedx-linux-x64",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := FindManifestDigest([]byte(tt.manifest), tt.prefix)
			if found != tt.found {
				t.Fatalf("found = %v, want %v", found, tt.found)
			}
			if tt.found && got != tt.want {
				t.Fatalf("digest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSidecarDigest(t *testing.T) {
	t.Parallel()

	digest := strings.Repeat("e", 64)

	tests := []struct {
		name    string
		data    string
		want    string
		wantErr string
	}{
		{name: "bare digest", data: digest + "\n", want: digest},
		{name: "sha256sum output", data: digest + "  cyclonedx-linux-x64.tar.gz\n", want: digest},
		{name: "uppercase normalized", data: strings.ToUpper(digest), want: digest},
		{
			name: "first line wins",
			data: digest + "  a\n" + strings.Repeat("f", 64) + "  b\n",
			want: digest,
		},
		{name: "empty file", data: "   \n", wantErr: "empty"},
		{name: "not hex", data: "zz not a digest\n", wantErr: "not a sha256 digest"},
		{name: "truncated digest", data: "deadbeef\n", wantErr: "not a sha256 digest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseSidecarDigest([]byte(tt.data))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got digest %q", tt.wantErr, got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %q, want substring %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSidecarDigest: %v", err)
			}
			if got != tt.want {
				t.Fatalf("digest = %q, want %q", got, tt.want)
			}
		})
	}
}
