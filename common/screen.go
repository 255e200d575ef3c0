package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit maps one world unit to screen pixels at zoom 1.
	PixelsPerUnit = 48
)
