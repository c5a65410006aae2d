package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Describe returns a human-readable host line for the report header, e.g.
// "linux/amd64 (ubuntu 24.04)". Distro detection failures fall back to the
// plain GOOS/GOARCH pair.
func Describe(ctx context.Context) string {
	base := fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)

	name, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil || name == "" {
		return base
	}
	if version == "" {
		return fmt.Sprintf("%s (%s)", base, name)
	}
	return fmt.Sprintf("%s (%s %s)", base, name, version)
}
