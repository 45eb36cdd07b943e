//go:build !linux

package reveal

import "runtime"

func CurrentHost() Host { return Host{GOOS: runtime.GOOS} }
