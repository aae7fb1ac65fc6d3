/*
Package scene
File: composer.go
Description:
    Builds the ordered draw list for the current economy state.

    Economy state -> venue layout (cached per venue) -> occupied seats
    (memoized by seat count and target count) -> depth sort -> screen
    positions. The layout is regenerated only when the venue or the loaded
    universe changes; resource ticks that leave the floored target count
    alone reuse the previous frame. Regenerating into the same seat list
    keeps the seated occupants.
*/

package scene

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/everforgeworks/congregation/internal/game"
	"github.com/everforgeworks/congregation/internal/iso"
	"github.com/everforgeworks/congregation/internal/layout"
	"github.com/everforgeworks/congregation/internal/occupancy"
)

// KindPerson is the draw kind of an occupant.
const KindPerson = "person"

// ViewPadding is the margin added around the footprint's view box.
const ViewPadding = 40

// DrawItem is one entry of the paint sequence.
type DrawItem struct {
	iso.Entity
	Screen iso.Point `json:"screen"`
}

// Frame is everything a presentation client needs to paint the venue.
// Items is shared between frames with the same occupants; treat it as
// read-only.
type Frame struct {
	VenueKey  string     `json:"venue_key"`
	VenueName string     `json:"venue_name"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Floor     string     `json:"floor"`
	ViewBox   iso.Bounds `json:"view_box"`
	Seats     int        `json:"seats"`
	Occupied  int        `json:"occupied"`
	Items     []DrawItem `json:"items"`
}

type cacheKey struct {
	uni   *game.Universe
	venue string
}

// Composer turns states into frames. It is safe for concurrent use; every
// caller within one (venue, seat count, target count) window sees the same
// occupants.
type Composer struct {
	mu sync.Mutex

	key     cacheKey
	cached  bool
	venue   game.Venue
	layout  layout.Layout
	seats   []layout.Object
	static  []iso.Entity
	sampler *occupancy.Sampler

	// last sorted frame, reused while the sampler has not resampled
	items         []DrawItem
	itemsSampleID int

	regenerations int
}

// NewComposer creates a composer whose occupancy draws from rng.
func NewComposer(rng *rand.Rand) *Composer {
	return &Composer{sampler: occupancy.NewSampler(rng)}
}

// Compose builds the frame for st under u.
func (c *Composer) Compose(u *game.Universe, st game.State) (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 1. Layout, regenerated only on venue or universe change
	key := cacheKey{uni: u, venue: st.Venue}
	if !c.cached || c.key != key {
		v := u.GetVenue(st.Venue)
		if v == nil {
			return Frame{}, fmt.Errorf("unknown venue %q", st.Venue)
		}
		c.regenerate(key, *v)
	}

	// 2. Occupancy, memoized by (seat count, target count)
	ratio := occupancy.FillRatio(st.Members, float64(c.venue.Capacity))
	occupied := c.sampler.Occupied(len(c.seats), ratio)

	// 3. Paint order, rebuilt only when the occupied set changed
	if c.items == nil || c.itemsSampleID != c.sampler.Resamples() {
		c.items = c.paint(occupied)
		c.itemsSampleID = c.sampler.Resamples()
	}

	return Frame{
		VenueKey:  c.venue.Key,
		VenueName: c.venue.Name,
		Width:     c.layout.Width,
		Height:    c.layout.Height,
		Floor:     c.layout.Floor,
		ViewBox:   iso.FootprintBounds(c.layout.Width, c.layout.Height).Pad(ViewPadding),
		Seats:     len(c.seats),
		Occupied:  len(occupied),
		Items:     c.items,
	}, nil
}

func (c *Composer) regenerate(key cacheKey, v game.Venue) {
	c.key = key
	c.cached = true
	c.venue = v
	c.layout = layout.Generate(v.Layout)
	seats := c.layout.Seats()
	// an identical seat list keeps its occupants, e.g. across a reload
	if !slices.Equal(seats, c.seats) {
		c.sampler.Reset()
	}
	c.seats = seats
	c.static = staticEntities(c.layout)
	c.items = nil
	c.regenerations++
}

// staticEntities lists floor tiles followed by the layout's objects.
func staticEntities(l layout.Layout) []iso.Entity {
	out := make([]iso.Entity, 0, l.Width*l.Height+len(l.Objects))
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			out = append(out, iso.Entity{GX: x, GY: y, Category: iso.CategoryTile, Kind: l.Floor})
		}
	}
	for _, o := range l.Objects {
		out = append(out, iso.Entity{GX: o.X, GY: o.Y, Category: iso.CategoryFurniture, Kind: o.Kind})
	}
	return out
}

func (c *Composer) paint(occupied []int) []DrawItem {
	entities := make([]iso.Entity, 0, len(c.static)+len(occupied))
	entities = append(entities, c.static...)
	for _, idx := range occupied {
		seat := c.seats[idx]
		entities = append(entities, iso.Entity{
			GX:       seat.X,
			GY:       seat.Y,
			Category: iso.CategoryOccupant,
			Kind:     KindPerson,
			Variant:  idx,
		})
	}

	sorted := iso.SortForPainting(entities)
	items := make([]DrawItem, len(sorted))
	for i, e := range sorted {
		pos := iso.TileCenter(e.GX, e.GY)
		if e.Category == iso.CategoryTile {
			pos = iso.ToScreen(e.GX, e.GY)
		}
		items[i] = DrawItem{Entity: e, Screen: pos}
	}
	return items
}

// Invalidate drops the cached layout; the next Compose regenerates it.
func (c *Composer) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = false
}

// Regenerations counts layout regenerations.
func (c *Composer) Regenerations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regenerations
}

// Resamples counts occupancy recomputations.
func (c *Composer) Resamples() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampler.Resamples()
}
