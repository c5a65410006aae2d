//go:build linux

package localbin

import "os"

// isNoExecMount reports whether path sits under a mount carrying the noexec
// option. Best effort: any parse trouble reads as false.
func isNoExecMount(path string) bool {
	if path == "" {
		return false
	}

	// mountinfo carries overlay details /proc/mounts lacks.
	if data, err := os.ReadFile("/proc/self/mountinfo"); err == nil { // #nosec G304 -- fixed procfs path
		if mounts := parseMountinfo(string(data)); len(mounts) > 0 {
			return noExecForPath(path, mounts)
		}
	}

	data, err := os.ReadFile("/proc/mounts") // #nosec G304 -- fixed procfs path
	if err != nil {
		return false
	}
	mounts := parseProcMounts(string(data))
	if len(mounts) == 0 {
		return false
	}
	return noExecForPath(path, mounts)
}
