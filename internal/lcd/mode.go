package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1
// of types.STAT.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM scan mode. The CPU can access the display RAM but not OAM.
	OAM
	// VRAM is the pixel transfer mode. The CPU can access neither the display RAM nor OAM.
	VRAM
)

const (
	// DotsPerLine is the number of dots (T-cycles at normal speed)
	// spent on each scanline.
	DotsPerLine = 456
	// Lines is the number of scanlines, including the 10 lines
	// of vertical blank.
	Lines = 154
	// VisibleLines is the number of lines drawn to the screen.
	VisibleLines = 144

	oamDots      = 80
	transferDots = 172
)
