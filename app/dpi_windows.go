//go:build windows

package app

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

// enableDPIAwareness stops Windows from bitmap-scaling the window on high
// DPI displays, which blurs the previews.
func enableDPIAwareness(logger *slog.Logger) {
	proc := windows.NewLazySystemDLL("user32.dll").NewProc("SetProcessDPIAware")
	if err := proc.Find(); err != nil {
		logger.Debug("SetProcessDPIAware unavailable", "error", err)
		return
	}
	_, _, _ = proc.Call()
}
