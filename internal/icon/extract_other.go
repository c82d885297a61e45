//go:build !windows

package icon

import (
	"bytes"
	"image/png"
)

type systemExtractor struct{}

func (systemExtractor) Extract(string) ([]byte, error) {
	return nil, ErrUnsupported
}

// TrayIcon returns the application icon in the format the tray expects.
func TrayIcon() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, AppImage(32)); err != nil {
		return nil
	}
	return buf.Bytes()
}
