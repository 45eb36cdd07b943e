package reveal

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// CurrentHost inspects the running system. WSL is detected from the
// distribution variable or, failing that, the kernel release string.
func CurrentHost() Host {
	h := Host{GOOS: runtime.GOOS, WSLDistro: os.Getenv("WSL_DISTRO_NAME")}
	if h.WSLDistro != "" {
		h.WSL = true
		return h
	}
	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		release := strings.ToLower(unix.ByteSliceToString(u.Release[:]))
		h.WSL = strings.Contains(release, "microsoft")
	}
	return h
}
