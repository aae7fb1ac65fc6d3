package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/everforgeworks/congregation/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigVenueChain(t *testing.T) {
	u := mustUniverse(t)

	type row struct {
		key, name string
		capacity  int
		upkeep    float64
		cost      float64
		next      string
	}
	want := []row{
		{"living_room", "Living Room", 20, 0, 1000, "school_auditorium"},
		{"school_auditorium", "School Auditorium", 100, 50, 5000, "movie_theater"},
		{"movie_theater", "Movie Theater", 300, 150, 15000, "warehouse"},
		{"warehouse", "Warehouse", 800, 400, 50000, "stadium"},
		{"stadium", "Stadium", 10000, 2000, 0, ""},
	}
	require.Len(t, u.Venues, len(want))
	for i, w := range want {
		v := u.Venues[i]
		assert.Equal(t, w, row{v.Key, v.Name, v.Capacity, v.Upkeep, v.UpgradeCost, v.Next})
	}

	assert.Equal(t, time.Second, u.BalanceConfig.TickInterval)
	assert.Equal(t, 5, u.BalanceConfig.MessageLogCap)
	assert.Nil(t, u.NextVenue("stadium"))
	assert.Equal(t, "school_auditorium", u.NextVenue("living_room").Key)
	assert.Zero(t, u.Capacity("nowhere"))
}

func TestDefaultConfigStaffTable(t *testing.T) {
	u := mustUniverse(t)
	for _, tc := range []struct {
		key      string
		cost     float64
		resource string
		yield    float64
	}{
		{"worshipLeader", 100, ResourceSpirit, 0.5},
		{"outreachTeam", 150, ResourceMembers, 0.1},
		{"adminStaff", 200, ResourceMoney, 1},
	} {
		r := u.GetStaff(tc.key)
		require.NotNil(t, r, tc.key)
		assert.Equal(t, tc.cost, r.Cost)
		assert.Equal(t, tc.resource, r.Resource)
		assert.Equal(t, tc.yield, r.Yield)
	}
	assert.Nil(t, u.GetStaff("choirDirector"))
}

// Every venue's layout is deterministic and never stacks two objects.
func TestDefaultLayouts(t *testing.T) {
	u := mustUniverse(t)
	seats := map[string]int{
		"living_room":       9,
		"school_auditorium": 34,
		"movie_theater":     64,
		"warehouse":         29,
		"stadium":           180,
	}
	for _, v := range u.Venues {
		a := layout.Generate(v.Layout)
		b := layout.Generate(v.Layout)
		assert.Equal(t, a, b, v.Key)
		assert.Empty(t, layout.Collisions(a.Objects), v.Key)
		assert.Len(t, a.Seats(), seats[v.Key], v.Key)
		for _, o := range a.Objects {
			assert.True(t, o.X >= 0 && o.X < a.Width && o.Y >= 0 && o.Y < a.Height, "%s: %+v out of bounds", v.Key, o)
		}
	}
}

func TestDefaultLayoutsDecodeAisleRows(t *testing.T) {
	u := mustUniverse(t)
	auditorium := u.GetVenue("school_auditorium")
	require.NotNil(t, auditorium)
	assert.Equal(t, []int{5}, auditorium.Layout.Seating.AisleRows)

	for _, s := range layout.Generate(auditorium.Layout).Seats() {
		assert.NotEqual(t, 5, s.Y)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	require.NoError(t, os.WriteFile(path, defaultConfig, 0o644))

	u, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, u.Venues, 5)

	u, err = LoadConfig("")
	require.NoError(t, err)
	assert.Len(t, u.Venues, 5)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

const tinyConfig = `
game_balance:
  start_venue: a
  tick_interval: 500ms
  message_log_cap: 3
actions:
  outreach_min_members: 1
  outreach_max_members: 3
staff:
  - { key: s, name: S, cost: 10, resource: money, yield: 1 }
venues:
  - key: a
    name: A
    capacity: 10
    next: b
    layout: { width: 2, height: 2, floor: wood, seating: { rule: explicit, cells: [{ x: 1, y: 1 }] } }
  - key: b
    name: B
    capacity: 20
    layout: { width: 2, height: 2, floor: wood, seating: { rule: explicit, cells: [{ x: 1, y: 1 }] } }
`

func TestParseConfig(t *testing.T) {
	u, err := ParseConfig([]byte(tinyConfig))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, u.BalanceConfig.TickInterval)
	assert.Equal(t, "b", u.NextVenue("a").Key)
}

func TestValidateRejectsBrokenUniverses(t *testing.T) {
	for name, mutate := range map[string]func(*Universe){
		"no tick interval":   func(u *Universe) { u.BalanceConfig.TickInterval = 0 },
		"no log cap":         func(u *Universe) { u.BalanceConfig.MessageLogCap = 0 },
		"unknown start":      func(u *Universe) { u.BalanceConfig.StartVenue = "zz" },
		"dangling next":      func(u *Universe) { u.Venues[0].Next = "zz" },
		"duplicate venue":    func(u *Universe) { u.Venues[1].Key = "a" },
		"shrinking capacity": func(u *Universe) { u.Venues[1].Capacity = 10 },
		"cycle": func(u *Universe) {
			u.Venues[1].Next = "a"
			u.Venues[0].Capacity = 30
		},
		"zero capacity":   func(u *Universe) { u.Venues[0].Capacity = 0 },
		"bad layout":      func(u *Universe) { u.Venues[0].Layout.Floor = "lava" },
		"bad resource":    func(u *Universe) { u.Staff[0].Resource = "gold" },
		"duplicate staff": func(u *Universe) { u.Staff = append(u.Staff, u.Staff[0]) },
		"outreach range":  func(u *Universe) { u.Actions.OutreachMaxMembers = 0 },
	} {
		u, err := ParseConfig([]byte(tinyConfig))
		require.NoError(t, err)
		mutate(u)
		assert.Error(t, u.Validate(), name)
	}
}

func TestParseConfigRejectsGarbage(t *testing.T) {
	_, err := ParseConfig([]byte("venues: [unterminated"))
	assert.Error(t, err)
}
