/*
Package iso
File: depth.go
Description:
    Painter's algorithm ordering for the isometric scene.
    Entities are painted back to front along the gx+gy diagonal.
*/

package iso

import "sort"

// Category is the paint layer of an entity. Lower layers paint first
// when two entities share the same depth.
type Category int

const (
	CategoryTile Category = iota
	CategoryFurniture
	CategoryOccupant
)

func (c Category) String() string {
	switch c {
	case CategoryTile:
		return "tile"
	case CategoryFurniture:
		return "furniture"
	case CategoryOccupant:
		return "occupant"
	}
	return "unknown"
}

// MarshalText lets categories travel as readable strings in JSON.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Entity is anything drawable that stands on a grid cell.
type Entity struct {
	GX       int      `json:"gx"`
	GY       int      `json:"gy"`
	Category Category `json:"category"`
	Kind     string   `json:"kind"`    // e.g. "wood", "chair", "pulpit", "person"
	Variant  int      `json:"variant"` // palette seed for the presentation layer
}

// Depth is the entity's position along the isometric depth axis.
func (e Entity) Depth() int { return e.GX + e.GY }

// SortForPainting returns a copy of entities ordered back to front.
// Primary key is gx+gy ascending, then category (tile, furniture,
// occupant). Entities with equal keys keep their input order.
func SortForPainting(entities []Entity) []Entity {
	out := make([]Entity, len(entities))
	copy(out, entities)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Depth(), out[j].Depth()
		if di != dj {
			return di < dj
		}
		return out[i].Category < out[j].Category
	})
	return out
}
