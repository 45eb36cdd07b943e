package reveal

import (
	"errors"
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	cases := []struct {
		host Host
		want string
	}{
		{Host{GOOS: "darwin"}, "open /data/scene"},
		{Host{GOOS: "linux"}, "xdg-open /data/scene"},
		{Host{GOOS: "windows"}, "explorer.exe /data/scene"},
		{Host{GOOS: "linux", WSL: true, WSLDistro: "Ubuntu"}, `explorer.exe \\wsl$\Ubuntu\data\scene`},
	}
	for _, c := range cases {
		argv, err := Command(c.host, "/data/scene")
		if err != nil {
			t.Fatalf("%+v: %v", c.host, err)
		}
		if got := strings.Join(argv, " "); got != c.want {
			t.Fatalf("%+v: got %q expected %q", c.host, got, c.want)
		}
	}
}

func TestCommand_Unsupported(t *testing.T) {
	_, err := Command(Host{GOOS: "plan9"}, "/x")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestWindowsPath(t *testing.T) {
	if got := WindowsPath("/mnt/c/Users/riley/data", "Ubuntu"); got != `C:\Users\riley\data` {
		t.Fatalf("mounted drive: %q", got)
	}
	if got := WindowsPath("/mnt/d", ""); got != `D:\` {
		t.Fatalf("drive root: %q", got)
	}
	if got := WindowsPath("/home/riley", ""); got != `\home\riley` {
		t.Fatalf("no distro: %q", got)
	}
}

func TestOpen_MissingPath(t *testing.T) {
	if err := Open("/definitely/not/here"); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}
