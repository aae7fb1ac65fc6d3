/*
Package layout
File: generator.go
Description:
    Turns a venue blueprint into a concrete object list.
    Generation is deterministic: no randomness and no map iteration, so the
    same blueprint always yields the same layout.
    Furniture is placed first; the seat-fill pass skips any cell that is
    already taken, so no two objects ever share a cell.
*/

package layout

import (
	"errors"
	"fmt"
)

// Generate builds the layout for a blueprint. Invalid blueprints should be
// rejected by Validate at config load; Generate still never double-places
// an object or places one outside the footprint.
func Generate(bp Blueprint) Layout {
	l := Layout{
		Width:   bp.Width,
		Height:  bp.Height,
		Floor:   bp.Floor,
		Objects: make([]Object, 0, len(bp.Furniture)+bp.Width*bp.Height/2),
	}
	taken := make(map[Cell]bool)

	place := func(x, y int, kind string) {
		c := Cell{X: x, Y: y}
		if !inBounds(bp, c) || taken[c] {
			return
		}
		taken[c] = true
		l.Objects = append(l.Objects, Object{X: x, Y: y, Kind: kind})
	}

	// 1. Furniture wins every contested cell.
	for _, f := range bp.Furniture {
		place(f.X, f.Y, f.Kind)
	}

	// 2. Seats fill what is left.
	for _, c := range seatCells(bp.Seating) {
		place(c.X, c.Y, KindChair)
	}

	return l
}

// seatCells enumerates candidate seat cells for a rule in a fixed order
// (x outer, y inner).
func seatCells(r SeatingRule) []Cell {
	switch r.Rule {
	case RuleExplicit:
		return r.Cells

	case RuleRows:
		aisle := make(map[int]bool, len(r.AisleRows))
		for _, y := range r.AisleRows {
			aisle[y] = true
		}
		var cells []Cell
		for x := r.Area.X0; x < r.Area.X1; x++ {
			for y := r.Area.Y0; y < r.Area.Y1; y++ {
				if aisle[y] {
					continue
				}
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
		return cells

	case RuleGrid:
		sx, sy := r.StepX, r.StepY
		if sx <= 0 {
			sx = 1
		}
		if sy <= 0 {
			sy = 1
		}
		var cells []Cell
		for x := r.Area.X0; x < r.Area.X1; x += sx {
			for y := r.Area.Y0; y < r.Area.Y1; y += sy {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
		return cells
	}
	return nil
}

func inBounds(bp Blueprint, c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < bp.Width && c.Y < bp.Height
}

// Validate checks a blueprint for configuration mistakes: empty footprint,
// unknown materials or furniture, furniture outside the floor or stacked
// on the same cell, and unknown seating rules.
func (bp Blueprint) Validate() error {
	if bp.Width <= 0 || bp.Height <= 0 {
		return fmt.Errorf("footprint %dx%d must be positive", bp.Width, bp.Height)
	}
	if !knownFloors[bp.Floor] {
		return fmt.Errorf("unknown floor material %q", bp.Floor)
	}

	seen := make(map[Cell]string, len(bp.Furniture))
	for _, f := range bp.Furniture {
		if !knownFurniture[f.Kind] {
			return fmt.Errorf("unknown furniture kind %q", f.Kind)
		}
		c := Cell{X: f.X, Y: f.Y}
		if !inBounds(bp, c) {
			return fmt.Errorf("%s at (%d,%d) is outside the %dx%d floor", f.Kind, f.X, f.Y, bp.Width, bp.Height)
		}
		if other, ok := seen[c]; ok {
			return fmt.Errorf("%s and %s both placed at (%d,%d)", other, f.Kind, f.X, f.Y)
		}
		seen[c] = f.Kind
	}

	switch bp.Seating.Rule {
	case RuleExplicit:
		if len(bp.Seating.Cells) == 0 {
			return errors.New("explicit seating lists no cells")
		}
	case RuleRows, RuleGrid:
		a := bp.Seating.Area
		if a.X1 <= a.X0 || a.Y1 <= a.Y0 {
			return fmt.Errorf("seating area %+v is empty", a)
		}
	default:
		return fmt.Errorf("unknown seating rule %q", bp.Seating.Rule)
	}
	return nil
}

// Collisions returns every cell holding more than one object. A correct
// layout has none.
func Collisions(objs []Object) []Cell {
	count := make(map[Cell]int, len(objs))
	var dup []Cell
	for _, o := range objs {
		c := Cell{X: o.X, Y: o.Y}
		count[c]++
		if count[c] == 2 {
			dup = append(dup, c)
		}
	}
	return dup
}
