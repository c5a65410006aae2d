package localbin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/relcheck/relcheck/pkg/trust"
)

// ErrNotFound reports that no executable could be resolved for the tool.
// It is fatal and precedes all network activity.
var ErrNotFound = errors.New("local binary not found")

// VersionUnavailable is the sentinel reported when the binary cannot be
// invoked for its version. Version is advisory: hash outcomes never depend
// on it.
const VersionUnavailable = "unavailable"

// Binary is the resolved local artifact.
type Binary struct {
	Path    string
	Hash    string // lowercase hex SHA-256 over the full file bytes
	Version string // normalized, or VersionUnavailable
}

// Inspect resolves, hashes, and versions the local binary.
func Inspect(ctx context.Context, explicit, tool, versionArg string, log *zap.Logger) (*Binary, error) {
	if log == nil {
		log = zap.NewNop()
	}

	path, err := Resolve(explicit, tool)
	if err != nil {
		return nil, err
	}
	hash, err := HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", path, err)
	}
	version := Version(ctx, path, versionArg, log)

	log.Debug("inspected local binary",
		zap.String("path", path),
		zap.String("version", version))
	return &Binary{Path: path, Hash: hash, Version: version}, nil
}

// Resolve locates the local binary: an explicit path wins when it points at
// an executable file, otherwise the tool name is looked up on PATH.
// Symlinks resolve to their target for display.
func Resolve(explicit, tool string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrNotFound, explicit, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, explicit)
		}
		if err := checkExecutable(explicit, info); err != nil {
			return "", err
		}
		return canonicalPath(explicit), nil
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not on PATH", ErrNotFound, tool)
	}
	return canonicalPath(path), nil
}

func checkExecutable(path string, info os.FileInfo) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable (mode %s)", ErrNotFound, path, info.Mode().Perm())
	}
	if isNoExecMount(path) {
		return fmt.Errorf("%w: %s sits on a noexec mount", ErrNotFound, path)
	}
	return nil
}

func canonicalPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// HashFile streams the file through SHA-256 and returns lowercase hex. The
// resolution strategies hash downloaded assets through the same function,
// keeping both sides of every comparison on one digest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- resolved binary or workspace path
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Version invokes the binary with versionArg and normalizes the output.
// Invocation failure yields VersionUnavailable, never an error.
func Version(ctx context.Context, path, versionArg string, log *zap.Logger) string {
	out, err := exec.CommandContext(ctx, path, versionArg).Output()
	if err != nil {
		if log != nil {
			log.Debug("version invocation failed",
				zap.String("bin", path),
				zap.String("arg", versionArg),
				zap.Error(err))
		}
		return VersionUnavailable
	}
	v := trust.NormalizeVersionOutput(string(out))
	if v == "" {
		return VersionUnavailable
	}
	return v
}
