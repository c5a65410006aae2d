//go:build !linux

package localbin

// noexec mount detection only applies to Linux procfs.
func isNoExecMount(string) bool { return false }
