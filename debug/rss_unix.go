//go:build linux || darwin

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// residentBytes returns the peak resident size of the current process.
func residentBytes() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	// Linux reports kilobytes, darwin bytes.
	if runtime.GOOS == "linux" {
		return uint64(ru.Maxrss) * 1024, nil
	}
	return uint64(ru.Maxrss), nil
}
