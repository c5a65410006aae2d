package localbin

import (
	"path/filepath"
	"strings"
)

type mount struct {
	point   string
	options map[string]bool
}

// parseMountinfo reads /proc/self/mountinfo lines. Fields (kernel docs):
// id parent major:minor root mountpoint options ... "-" fstype source superopts.
// Superblock options are folded in since some flags only appear there.
func parseMountinfo(content string) []mount {
	var out []mount
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 6 {
			continue
		}
		sep := -1
		for i, f := range fields {
			if f == "-" {
				sep = i
				break
			}
		}
		if sep < 0 {
			continue
		}

		m := mount{point: unescapeMountPath(fields[4]), options: splitOptions(fields[5])}
		if sep+3 < len(fields) {
			for opt := range splitOptions(fields[sep+3]) {
				m.options[opt] = true
			}
		}
		out = append(out, m)
	}
	return out
}

// parseProcMounts reads the older /proc/mounts format:
// source mountpoint fstype options dump pass.
func parseProcMounts(content string) []mount {
	var out []mount
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 4 {
			continue
		}
		out = append(out, mount{point: unescapeMountPath(fields[1]), options: splitOptions(fields[3])})
	}
	return out
}

func splitOptions(raw string) map[string]bool {
	opts := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			opts[part] = true
		}
	}
	return opts
}

// unescapeMountPath undoes the octal escapes procfs applies to spaces and
// a few special characters.
func unescapeMountPath(value string) string {
	repl := strings.NewReplacer(
		`\040`, " ",
		`\011`, "\t",
		`\012`, "\n",
		`\134`, `\`,
	)
	return repl.Replace(value)
}

// noExecForPath finds the longest mount point prefixing path and reports
// whether that mount is noexec.
func noExecForPath(path string, mounts []mount) bool {
	target := filepath.ToSlash(filepath.Clean(path))
	if target == "" || target == "." {
		return false
	}

	best := -1
	noexec := false
	for _, m := range mounts {
		point := filepath.ToSlash(filepath.Clean(m.point))
		if point == "" || point == "." || !pathHasPrefix(target, point) {
			continue
		}
		if len(point) > best {
			best = len(point)
			noexec = m.options["noexec"]
		}
	}
	return noexec
}

func pathHasPrefix(path, prefix string) bool {
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
