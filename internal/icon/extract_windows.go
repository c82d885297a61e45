//go:build windows

package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	shell32                    = windows.NewLazySystemDLL("shell32.dll")
	procExtractAssociatedIconW = shell32.NewProc("ExtractAssociatedIconW")
	errNoIcon                  = errors.New("no associated icon")
)

type systemExtractor struct{}

func (systemExtractor) Extract(path string) ([]byte, error) {
	hIcon, err := extractAssociatedIcon(path)
	if err != nil {
		return nil, err
	}
	defer win.DestroyIcon(hIcon)
	img, err := iconHandleToImage(hIcon)
	if err != nil {
		return nil, err
	}
	return EncodeICO(img)
}

// TrayIcon returns the application icon in the format the tray expects.
func TrayIcon() []byte {
	data, err := EncodeICO(AppImage(32))
	if err != nil {
		return nil
	}
	return data
}

func extractAssociatedIcon(path string) (win.HICON, error) {
	clean := strings.Trim(path, `"`)
	if clean == "" {
		return 0, errNoIcon
	}
	// The API may rewrite the path in place, so hand it a MAX_PATH buffer.
	buf := make([]uint16, windows.MAX_PATH)
	src, err := windows.UTF16FromString(clean)
	if err != nil {
		return 0, err
	}
	if len(src) > len(buf) {
		buf = make([]uint16, len(src))
	}
	copy(buf, src)
	var index uint16
	ret, _, _ := procExtractAssociatedIconW.Call(
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&index)),
	)
	if ret == 0 {
		return 0, fmt.Errorf("%w: %s", errNoIcon, clean)
	}
	return win.HICON(ret), nil
}

func iconHandleToImage(hIcon win.HICON) (image.Image, error) {
	var info win.ICONINFO
	if !win.GetIconInfo(hIcon, &info) {
		return nil, errors.New("GetIconInfo failed")
	}
	defer func() {
		if info.HbmColor != 0 {
			win.DeleteObject(win.HGDIOBJ(info.HbmColor))
		}
		if info.HbmMask != 0 {
			win.DeleteObject(win.HGDIOBJ(info.HbmMask))
		}
	}()

	width, height := 32, 32
	if info.HbmColor != 0 {
		var bmp win.BITMAP
		if win.GetObject(win.HGDIOBJ(info.HbmColor), unsafe.Sizeof(bmp), unsafe.Pointer(&bmp)) != 0 {
			width, height = int(bmp.BmWidth), int(bmp.BmHeight)
		}
	}

	screen := win.GetDC(0)
	if screen == 0 {
		return nil, errors.New("GetDC failed")
	}
	defer win.ReleaseDC(0, screen)

	mem := win.CreateCompatibleDC(screen)
	if mem == 0 {
		return nil, errors.New("CreateCompatibleDC failed")
	}
	defer win.DeleteDC(mem)

	header := win.BITMAPINFOHEADER{
		BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
		BiWidth:       int32(width),
		BiHeight:      int32(-height),
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: win.BI_RGB,
	}
	var bits unsafe.Pointer
	bitmap := win.CreateDIBSection(mem, &header, win.DIB_RGB_COLORS, &bits, 0, 0)
	if bitmap == 0 || bits == nil {
		return nil, errors.New("CreateDIBSection failed")
	}
	defer win.DeleteObject(win.HGDIOBJ(bitmap))

	old := win.SelectObject(mem, win.HGDIOBJ(bitmap))
	defer win.SelectObject(mem, old)

	if !win.DrawIconEx(mem, 0, 0, hIcon, int32(width), int32(height), 0, 0, win.DI_NORMAL) {
		return nil, errors.New("DrawIconEx failed")
	}

	raw := unsafe.Slice((*byte)(bits), width*height*4)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.SetNRGBA(x, y, color.NRGBA{R: raw[i+2], G: raw[i+1], B: raw[i], A: raw[i+3]})
		}
	}
	return img, nil
}
