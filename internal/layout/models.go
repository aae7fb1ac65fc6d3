/*
Package layout
File: models.go
Description:
    Defines the venue blueprint schema (as read from YAML) and the generated
    layout handed to the scene. Blueprints are static configuration; layouts
    are derived from them and never mutated afterwards.
*/

package layout

// Floor materials understood by presentation clients.
const (
	FloorWood       = "wood"
	FloorCarpetBlue = "carpet_blue"
	FloorTile       = "tile"
	FloorConcrete   = "concrete"
	FloorStage      = "stage"
	FloorGrass      = "grass"
)

// Object kinds. KindChair is the only seat; everything else is furniture.
const (
	KindChair         = "chair"
	KindPulpit        = "pulpit"
	KindSpeaker       = "speaker"
	KindDrumKit       = "drum_kit"
	KindPlant         = "plant"
	KindCoffeeStation = "coffee_station"
)

// Seat-filling rules.
const (
	RuleExplicit = "explicit" // seats at the listed cells
	RuleRows     = "rows"     // every cell of Area except the aisle rows
	RuleGrid     = "grid"     // every StepX/StepY cell of Area
)

var knownFloors = map[string]bool{
	FloorWood: true, FloorCarpetBlue: true, FloorTile: true,
	FloorConcrete: true, FloorStage: true, FloorGrass: true,
}

var knownFurniture = map[string]bool{
	KindPulpit: true, KindSpeaker: true, KindDrumKit: true,
	KindPlant: true, KindCoffeeStation: true,
}

// Cell is a position on a venue's logical grid.
type Cell struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Rect is a half-open grid rectangle: X0 <= x < X1, Y0 <= y < Y1.
type Rect struct {
	X0 int `yaml:"x0" json:"x0"`
	Y0 int `yaml:"y0" json:"y0"`
	X1 int `yaml:"x1" json:"x1"`
	Y1 int `yaml:"y1" json:"y1"`
}

// Placement pins a piece of furniture to a cell.
type Placement struct {
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
	Kind string `yaml:"kind" json:"kind"`
}

// SeatingRule describes how chairs fill the floor once furniture is placed.
type SeatingRule struct {
	Rule      string `yaml:"rule" json:"rule"`
	Cells     []Cell `yaml:"cells,omitempty" json:"cells,omitempty"`           // explicit
	Area      Rect   `yaml:"area" json:"area"`                                 // rows, grid
	StepX     int    `yaml:"step_x,omitempty" json:"step_x,omitempty"`         // grid (default 1)
	StepY     int    `yaml:"step_y,omitempty" json:"step_y,omitempty"`         // grid (default 1)
	AisleRows []int  `yaml:"aisle_rows,omitempty" json:"aisle_rows,omitempty"` // rows: y values left empty
}

// Blueprint is the static description of one venue's floor.
type Blueprint struct {
	Width     int         `yaml:"width" json:"width"`
	Height    int         `yaml:"height" json:"height"`
	Floor     string      `yaml:"floor" json:"floor"`
	Furniture []Placement `yaml:"furniture" json:"furniture"`
	Seating   SeatingRule `yaml:"seating" json:"seating"`
}

// Object is a fixed item standing on the grid.
type Object struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Kind string `json:"kind"`
}

// IsSeat reports whether occupants can be placed on the object.
func (o Object) IsSeat() bool { return o.Kind == KindChair }

// Layout is the generated floor of a venue: footprint, material and the
// static object list (furniture first, then seats).
type Layout struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Floor   string   `json:"floor"`
	Objects []Object `json:"objects"`
}

// Seats returns the seat objects in generation order. Seat indices used by
// the occupancy sampler refer to this order.
func (l Layout) Seats() []Object {
	seats := make([]Object, 0, len(l.Objects))
	for _, o := range l.Objects {
		if o.IsSeat() {
			seats = append(seats, o)
		}
	}
	return seats
}

// Furniture returns the non-seat objects.
func (l Layout) Furniture() []Object {
	var out []Object
	for _, o := range l.Objects {
		if !o.IsSeat() {
			out = append(out, o)
		}
	}
	return out
}
