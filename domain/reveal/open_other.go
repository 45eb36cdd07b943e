//go:build !windows

package reveal

import (
	"fmt"
	"os/exec"
)

func open(path string) error {
	argv, err := Command(CurrentHost(), path)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
