/*
Package game
File: models.go
Description:
    Defines the data structures of the congregation economy.
    Static configuration (venue chain, staff table, action tuning) maps
    directly onto the YAML config; State is the runtime economy held by a
    Session and served as JSON to presentation clients.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

import (
	"time"

	"github.com/everforgeworks/congregation/internal/layout"
)

// Resources a staff role can yield.
const (
	ResourceMoney   = "money"
	ResourceMembers = "members"
	ResourceSpirit  = "spirit"
)

// GameBalance stores the global tuning variables from the config.
type GameBalance struct {
	StartingMoney   float64       `yaml:"starting_money" json:"starting_money"`     // Money in the plate at session start
	StartingMembers float64       `yaml:"starting_members" json:"starting_members"` // Initial congregation size
	StartingSpirit  float64       `yaml:"starting_spirit" json:"starting_spirit"`   // Initial spirit
	StartVenue      string        `yaml:"start_venue" json:"start_venue"`           // Venue key of the first venue
	TickInterval    time.Duration `yaml:"tick_interval" json:"tick_interval"`       // Real time per simulated day
	MessageLogCap   int           `yaml:"message_log_cap" json:"message_log_cap"`   // Messages kept in the log
	WelcomeMessage  string        `yaml:"welcome_message" json:"welcome_message"`   // First log entry
}

// Venue is one link of the upgrade chain.
type Venue struct {
	Key         string           `yaml:"key" json:"key"`                   // Unique ID (e.g. "living_room")
	Name        string           `yaml:"name" json:"name"`                 // Display name
	Capacity    int              `yaml:"capacity" json:"capacity"`         // Authoritative member cap
	Upkeep      float64          `yaml:"upkeep" json:"upkeep"`             // Weekly running cost, charged daily as Upkeep/7
	UpgradeCost float64          `yaml:"upgrade_cost" json:"upgrade_cost"` // Price of moving on to Next
	Next        string           `yaml:"next" json:"next,omitempty"`       // Key of the next venue; empty for the terminal venue
	Layout      layout.Blueprint `yaml:"layout" json:"-"`                  // Floor blueprint for the scene
}

// StaffRole is a purchasable, persistent per-tick yield of one resource.
type StaffRole struct {
	Key         string  `yaml:"key" json:"key"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Cost        float64 `yaml:"cost" json:"cost"`
	Resource    string  `yaml:"resource" json:"resource"` // money, members or spirit
	Yield       float64 `yaml:"yield" json:"yield"`       // Amount per owned staff per tick
}

// ActionConfig tunes the player-invoked actions.
type ActionConfig struct {
	ServiceSpiritCost  float64 `yaml:"service_spirit_cost" json:"service_spirit_cost"`
	TithePerMember     float64 `yaml:"tithe_per_member" json:"tithe_per_member"`
	TitheBase          float64 `yaml:"tithe_base" json:"tithe_base"`
	OutreachCost       float64 `yaml:"outreach_cost" json:"outreach_cost"`
	OutreachMinMembers int     `yaml:"outreach_min_members" json:"outreach_min_members"`
	OutreachMaxMembers int     `yaml:"outreach_max_members" json:"outreach_max_members"`
}

// Universe is the root configuration struct, mapping to the whole YAML file.
// A loaded Universe is never mutated; reloads build a new one.
type Universe struct {
	BalanceConfig GameBalance  `yaml:"game_balance" json:"game_balance"`
	Actions       ActionConfig `yaml:"actions" json:"actions"`
	Staff         []StaffRole  `yaml:"staff" json:"staff"`
	Venues        []Venue      `yaml:"venues" json:"venues"`
}

// State is the numeric economy of one session.
// Members is kept fractional so slow per-tick growth accumulates; displays
// truncate it.
type State struct {
	Money    float64        `json:"money"`
	Members  float64        `json:"members"` // Clamped to [0, capacity of Venue]
	Spirit   float64        `json:"spirit"`
	Venue    string         `json:"venue"`    // Current venue key
	Day      int            `json:"day"`      // Starts at 1, +1 per tick
	Week     int            `json:"week"`     // floor(Day/7)+1
	Messages []string       `json:"messages"` // Most recent first, capped
	Staff    map[string]int `json:"staff"`    // Staff role key -> count owned
}
