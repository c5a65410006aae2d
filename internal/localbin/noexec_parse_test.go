package localbin

import "testing"

func TestNoExecLongestMountWins(t *testing.T) {
	t.Parallel()

	content := `36 25 0:32 / / rw,relatime - overlay overlay rw,noexec
40 36 0:45 / /opt rw,relatime - ext4 /dev/sda rw
41 40 0:46 / /opt/tools rw,relatime - ext4 /dev/sda rw,noexec
`
	mounts := parseMountinfo(content)
	if len(mounts) != 3 {
		t.Fatalf("expected 3 mounts, got %d", len(mounts))
	}

	if !noExecForPath("/usr/local/bin/cyclonedx", mounts) {
		t.Fatal("expected a path under / to inherit the root noexec")
	}
	if noExecForPath("/opt/bin/cyclonedx", mounts) {
		t.Fatal("expected /opt to override the root noexec")
	}
	if !noExecForPath("/opt/tools/cyclonedx", mounts) {
		t.Fatal("expected the longest mount point to win")
	}
}

func TestNoExecProcMounts(t *testing.T) {
	t.Parallel()

	content := `/dev/sda1 / ext4 rw,relatime 0 0
tmpfs /tmp tmpfs rw,nosuid,nodev,noexec 0 0
`
	mounts := parseProcMounts(content)
	if len(mounts) != 2 {
		t.Fatalf("expected 2 mounts, got %d", len(mounts))
	}

	if !noExecForPath("/tmp/cyclonedx", mounts) {
		t.Fatal("expected /tmp to be noexec")
	}
	if noExecForPath("/usr/bin/cyclonedx", mounts) {
		t.Fatal("expected /usr/bin to be exec")
	}
}

func TestNoExecEscapedMountPoint(t *testing.T) {
	t.Parallel()

	content := `1 2 3:4 / /mnt/usb\040stick rw,relatime - vfat /dev/sdb1 rw,noexec
`
	mounts := parseMountinfo(content)
	if len(mounts) != 1 {
		t.Fatalf("expected 1 mount, got %d", len(mounts))
	}
	if got := mounts[0].point; got != "/mnt/usb stick" {
		t.Fatalf("mount point = %q, want unescaped space", got)
	}
	if !noExecForPath("/mnt/usb stick/cyclonedx", mounts) {
		t.Fatal("expected the escaped mount point to be noexec")
	}
}

func TestNoExecToleratesGarbage(t *testing.T) {
	t.Parallel()

	if noExecForPath("/tmp", nil) {
		t.Fatal("expected false for no mounts")
	}
	if noExecForPath("/tmp", parseMountinfo("garbage\n\n- -")) {
		t.Fatal("expected false for unparsable mountinfo")
	}
	if noExecForPath("", parseProcMounts("/dev/sda1 / ext4 rw,noexec 0 0")) {
		t.Fatal("expected false for empty path")
	}
}
