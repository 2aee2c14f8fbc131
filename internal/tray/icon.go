package tray

// iconBytes returns a generated 16x16 32-bit ICO. Pixel rows paint a
// simple wheel glyph; the zeroed mask keeps the rest transparent.
func iconBytes() []byte {
	icon := make([]byte, 1118)
	// ICO header
	copy(icon[0:6], []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00})
	// Icon directory entry
	copy(icon[6:22], []byte{
		0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		0x48, 0x04, 0x00, 0x00, // 1024 px + 40 header + 32 mask
		0x16, 0x00, 0x00, 0x00, // offset
	})
	// DIB header
	copy(icon[22:62], []byte{
		0x28, 0x00, 0x00, 0x00, // size
		0x10, 0x00, 0x00, 0x00, // width
		0x20, 0x00, 0x00, 0x00, // height, doubled for the mask
		0x01, 0x00, // planes
		0x20, 0x00, // bpp
		0x00, 0x00, 0x00, 0x00, // compression
		0x00, 0x04, 0x00, 0x00, // image size
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	})

	// Opaque vertical bar through the middle, bottom-up rows
	set := func(x, y int) {
		off := 62 + (15-y)*16*4 + x*4
		icon[off+0] = 0xF0 // B
		icon[off+1] = 0xF0 // G
		icon[off+2] = 0xF0 // R
		icon[off+3] = 0xFF // A
	}
	for y := 2; y <= 13; y++ {
		set(7, y)
		set(8, y)
	}
	// Arrowheads
	for _, p := range [][2]int{{5, 4}, {6, 3}, {9, 3}, {10, 4}, {5, 11}, {6, 12}, {9, 12}, {10, 11}} {
		set(p[0], p[1])
	}
	return icon
}
