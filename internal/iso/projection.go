/*
Package iso
File: projection.go
Description:
    Isometric projection math shared by every consumer of the scene.
    A grid cell (gx, gy) maps to the top corner of its diamond on screen.
    The basis is a fixed 2:1 diamond; nothing else in the repository may
    define its own tile constants.
*/

package iso

const (
	// HalfTileWidth is half the on-screen width of one floor diamond.
	HalfTileWidth = 32
	// HalfTileHeight is half the on-screen height of one floor diamond (2:1 basis).
	HalfTileHeight = 16

	// ObjectHeadroom is the vertical space reserved above the floor for the
	// tallest object sprite, so the view box does not clip seated people.
	ObjectHeadroom = 32
)

// Point is a position in screen space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToScreen projects grid coordinates onto screen coordinates.
func ToScreen(gx, gy int) Point {
	return Point{
		X: (gx - gy) * HalfTileWidth,
		Y: (gx + gy) * HalfTileHeight,
	}
}

// TileCenter returns the screen position of the centre of a cell's diamond.
// Objects standing on a cell are anchored here.
func TileCenter(gx, gy int) Point {
	p := ToScreen(gx, gy)
	p.Y += HalfTileHeight
	return p
}

// Bounds is the axis-aligned screen rectangle covering a footprint.
type Bounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Width of the rectangle in screen units.
func (b Bounds) Width() int { return b.MaxX - b.MinX }

// Height of the rectangle in screen units.
func (b Bounds) Height() int { return b.MaxY - b.MinY }

// Pad grows the rectangle by n on every side.
func (b Bounds) Pad(n int) Bounds {
	return Bounds{MinX: b.MinX - n, MinY: b.MinY - n, MaxX: b.MaxX + n, MaxY: b.MaxY + n}
}

// FootprintBounds computes the view box of a width x height floor.
// The top corner of cell (0,0) sits at the origin, the left-most point is
// the far corner of column 0, row height, and the right-most point is the
// far corner of column width, row 0.
func FootprintBounds(width, height int) Bounds {
	left := ToScreen(0, height)
	right := ToScreen(width, 0)
	bottom := ToScreen(width, height)
	return Bounds{
		MinX: left.X,
		MinY: 0,
		MaxX: right.X,
		MaxY: bottom.Y + ObjectHeadroom,
	}
}
