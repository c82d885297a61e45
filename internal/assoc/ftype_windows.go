//go:build windows

package assoc

import (
	"context"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

func runFtype(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "cmd.exe", "/c", "ftype")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
