package maze

import (
	"image"
	"image/color"
)

// The number of pixels across, in a square cell.
const cellPixels = 8

var (
	wallColor     = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	openColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pathColor     = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	frontierColor = color.RGBA{R: 0xa8, G: 0xc8, B: 0xf0, A: 0xff}
	closedColor   = color.RGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff}
	startColor    = color.RGBA{R: 0x30, G: 0xa0, B: 0x30, A: 0xff}
	endColor      = color.RGBA{R: 0x30, G: 0x50, B: 0xc0, A: 0xff}
)

// Image renders a snapshot as an image.Image, one cellPixels square per
// cell, so callers can png.Encode a maze directly. Rendering a snapshot
// rather than the live grid keeps image encoding free of locking.
type Image struct {
	snap Snapshot
}

func (s Snapshot) Image() *Image { return &Image{snap: s} }

func (m *Image) ColorModel() color.Model { return color.RGBAModel }

func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.snap.Cols*cellPixels, m.snap.Rows*cellPixels)
}

func (m *Image) At(x, y int) color.Color {
	row, col := y/cellPixels, x/cellPixels
	if row < 0 || col < 0 || row >= m.snap.Rows || col >= m.snap.Cols {
		return color.Transparent
	}
	p := Point{Row: row, Col: col}
	switch p {
	case m.snap.Start:
		return startColor
	case m.snap.End:
		return endColor
	}
	switch m.snap.Cells[row][col] {
	case glyphWall:
		return wallColor
	case glyphPath:
		return pathColor
	case glyphFrontier:
		return frontierColor
	case glyphClosed:
		return closedColor
	}
	return openColor
}
