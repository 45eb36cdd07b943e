// Package reveal opens a folder in the host's native file browser.
package reveal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedPlatform is returned on hosts without a known file browser.
var ErrUnsupportedPlatform = errors.New("reveal: unsupported platform")

// Host describes where the reveal runs.
type Host struct {
	GOOS string
	// WSLDistro is the WSL distribution name when running under WSL.
	WSLDistro string
	WSL       bool
}

// Command returns the argv that opens path on h.
func Command(h Host, path string) ([]string, error) {
	switch h.GOOS {
	case "darwin":
		return []string{"open", path}, nil
	case "windows":
		return []string{"explorer.exe", path}, nil
	case "linux":
		if h.WSL {
			return []string{"explorer.exe", WindowsPath(path, h.WSLDistro)}, nil
		}
		return []string{"xdg-open", path}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, h.GOOS)
}

// WindowsPath converts a WSL path for Windows tools. Paths on a mounted
// drive (/mnt/c/...) map to that drive letter; anything else goes through
// the \\wsl$ share of distro.
func WindowsPath(p, distro string) string {
	p = filepath.ToSlash(p)
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	if len(parts) >= 2 && parts[0] == "mnt" && len(parts[1]) == 1 {
		drive := strings.ToUpper(parts[1]) + `:\`
		return drive + strings.Join(parts[2:], `\`)
	}
	win := strings.ReplaceAll(p, "/", `\`)
	if distro == "" {
		return win
	}
	return `\\wsl$\` + distro + win
}

// Open reveals path in the native file browser without waiting for it.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	return open(abs)
}
