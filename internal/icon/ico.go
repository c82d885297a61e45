package icon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// EncodeICO wraps img as a single PNG-compressed ICO image, the container
// the Windows tray and menus accept.
func EncodeICO(img image.Image) ([]byte, error) {
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		return nil, err
	}
	b := img.Bounds()
	var out bytes.Buffer
	header := struct {
		Reserved uint16
		Type     uint16
		Count    uint16
	}{Type: 1, Count: 1}
	entry := struct {
		Width       uint8
		Height      uint8
		Colors      uint8
		Reserved    uint8
		Planes      uint16
		BitCount    uint16
		BytesInRes  uint32
		ImageOffset uint32
	}{
		Width:       icoDim(b.Dx()),
		Height:      icoDim(b.Dy()),
		Planes:      1,
		BitCount:    32,
		BytesInRes:  uint32(pngData.Len()),
		ImageOffset: 6 + 16,
	}
	if err := binary.Write(&out, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if err := binary.Write(&out, binary.LittleEndian, entry); err != nil {
		return nil, err
	}
	out.Write(pngData.Bytes())
	return out.Bytes(), nil
}

// icoDim encodes a dimension; 0 stands for 256 or larger.
func icoDim(v int) uint8 {
	if v <= 0 || v >= 256 {
		return 0
	}
	return uint8(v)
}

var (
	blankOnce sync.Once
	blank     []byte
)

// Blank is a transparent 16x16 icon for menu items whose entry has none.
// Items keep their last icon until a new one is set.
func Blank() []byte {
	blankOnce.Do(func() {
		data, err := EncodeICO(image.NewNRGBA(image.Rect(0, 0, 16, 16)))
		if err == nil {
			blank = data
		}
	})
	return blank
}

// AppImage draws the tray glyph: a rounded tile with a bolt.
func AppImage(size int) image.Image {
	if size < 8 {
		size = 8
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	tile := color.NRGBA{R: 0x2f, G: 0x6f, B: 0xeb, A: 0xff}
	bolt := color.NRGBA{R: 0xff, G: 0xd2, B: 0x3f, A: 0xff}
	radius := size / 5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if insideRounded(x, y, size, radius) {
				img.SetNRGBA(x, y, tile)
			}
		}
	}
	// Two slanted strokes joined in the middle.
	mid := size / 2
	for y := size / 6; y <= mid; y++ {
		x := mid + (mid-y)/3
		for dx := -size / 10; dx <= size/10; dx++ {
			img.SetNRGBA(x+dx-size/10, y, bolt)
		}
	}
	for y := mid; y < size-size/6; y++ {
		x := mid - (y-mid)/3
		for dx := -size / 10; dx <= size/10; dx++ {
			img.SetNRGBA(x+dx+size/10, y, bolt)
		}
	}
	return img
}

func insideRounded(x, y, size, r int) bool {
	cx, cy := x, y
	switch {
	case x < r && y < r:
		cx, cy = r, r
	case x >= size-r && y < r:
		cx, cy = size-r-1, r
	case x < r && y >= size-r:
		cx, cy = r, size-r-1
	case x >= size-r && y >= size-r:
		cx, cy = size-r-1, size-r-1
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
