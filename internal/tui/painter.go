/*
Package tui
File: painter.go
Description:
    Rasterizes a scene Frame onto a character grid.

    Screen space is divided into cells of CellWidth x CellHeight pixels.
    A tile covers four cells centred on its diamond; objects and occupants
    take the single cell under their anchor. Items are written in the
    frame's order, so later cells overwrite earlier ones exactly as the
    depth sort intends.
*/

package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/everforgeworks/congregation/internal/iso"
	"github.com/everforgeworks/congregation/internal/scene"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = iso.HalfTileWidth / 2
	CellHeight = iso.HalfTileHeight
)

// Canvas is the subset of tcell.Screen the painter draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Viewport places a frame inside a canvas region. Scroll is in cells and
// shifts the frame up/left.
type Viewport struct {
	Left, Top     int
	Width, Height int
	ScrollX       int
	ScrollY       int
}

// Cell maps a screen-space point of a frame to a canvas cell.
func (v Viewport) Cell(box iso.Bounds, p iso.Point) (col, row int) {
	col = v.Left + (p.X-box.MinX)/CellWidth - v.ScrollX
	row = v.Top + (p.Y-box.MinY)/CellHeight - v.ScrollY
	return col, row
}

func (v Viewport) contains(col, row int) bool {
	return col >= v.Left && col < v.Left+v.Width && row >= v.Top && row < v.Top+v.Height
}

// FrameSize is the number of columns and rows a frame needs unscrolled.
func FrameSize(f scene.Frame) (cols, rows int) {
	return f.ViewBox.Width()/CellWidth + 1, f.ViewBox.Height()/CellHeight + 1
}

var floorColors = map[string]tcell.Color{
	"wood":        tcell.NewRGBColor(133, 94, 66),
	"carpet_blue": tcell.NewRGBColor(52, 78, 140),
	"tile":        tcell.NewRGBColor(180, 180, 170),
	"concrete":    tcell.NewRGBColor(110, 110, 115),
	"stage":       tcell.NewRGBColor(90, 40, 40),
	"grass":       tcell.NewRGBColor(60, 130, 60),
}

var objectGlyphs = map[string]rune{
	"chair":          'h',
	"pulpit":         'Π',
	"speaker":        '▮',
	"drum_kit":       '⊚',
	"plant":          '♣',
	"coffee_station": 'c',
}

var occupantPalette = []tcell.Color{
	tcell.NewRGBColor(240, 200, 160),
	tcell.NewRGBColor(200, 150, 110),
	tcell.NewRGBColor(150, 100, 70),
	tcell.NewRGBColor(100, 70, 50),
	tcell.NewRGBColor(230, 120, 120),
	tcell.NewRGBColor(120, 170, 230),
}

func floorColor(kind string) tcell.Color {
	if c, ok := floorColors[kind]; ok {
		return c
	}
	return tcell.ColorGray
}

// FloorStyle is the style a floor kind is painted with.
func FloorStyle(kind string) tcell.Style {
	return tcell.StyleDefault.Background(floorColor(kind)).Foreground(tcell.ColorBlack)
}

// Glyph returns the rune and style an item is drawn with. Tiles inherit
// the background of their floor; other items are drawn over it.
func Glyph(item scene.DrawItem) (rune, tcell.Style) {
	switch item.Category {
	case iso.CategoryTile:
		return ' ', FloorStyle(item.Kind)
	case iso.CategoryOccupant:
		c := occupantPalette[item.Variant%len(occupantPalette)]
		return '@', tcell.StyleDefault.Foreground(c).Bold(true)
	}
	r, ok := objectGlyphs[item.Kind]
	if !ok {
		r = '?'
	}
	return r, tcell.StyleDefault.Foreground(tcell.ColorWhite)
}

// Paint draws f into v and returns how many cells it wrote.
func Paint(c Canvas, v Viewport, f scene.Frame) int {
	bg := floorColor(f.Floor)

	written := 0
	set := func(col, row int, r rune, style tcell.Style) {
		if !v.contains(col, row) {
			return
		}
		c.SetContent(col, row, r, nil, style)
		written++
	}

	for _, item := range f.Items {
		r, style := Glyph(item)
		if item.Category == iso.CategoryTile {
			// tile anchors sit on the diamond's top vertex
			center := iso.Point{X: item.Screen.X, Y: item.Screen.Y + iso.HalfTileHeight}
			col, row := v.Cell(f.ViewBox, center)
			for dx := -2; dx < 2; dx++ {
				set(col+dx, row, r, style)
			}
			continue
		}
		col, row := v.Cell(f.ViewBox, item.Screen)
		set(col, row, r, style.Background(bg))
	}
	return written
}
