/*
Package game
File: config.go
Description:
    Loads and validates the static universe (venue chain, staff table,
    action tuning). The default universe is embedded in the binary; a YAML
    file on disk can replace it.
*/

package game

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// DefaultConfig returns the embedded universe.
func DefaultConfig() (*Universe, error) {
	return ParseConfig(defaultConfig)
}

// LoadConfig reads a YAML universe from path. An empty path loads the
// embedded default.
func LoadConfig(path string) (*Universe, error) {
	if path == "" {
		return DefaultConfig()
	}

	// 1. Read the YAML file
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// 2. Decode and validate
	uni, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return uni, nil
}

// ParseConfig decodes and validates a YAML universe.
func ParseConfig(data []byte) (*Universe, error) {
	var uni Universe
	if err := yaml.Unmarshal(data, &uni); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := uni.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &uni, nil
}

// Validate enforces the invariants the economy and scene rely on.
func (u *Universe) Validate() error {
	b := u.BalanceConfig
	if b.TickInterval <= 0 {
		return errors.New("game_balance.tick_interval must be positive")
	}
	if b.MessageLogCap <= 0 {
		return errors.New("game_balance.message_log_cap must be positive")
	}
	if len(u.Venues) == 0 {
		return errors.New("no venues configured")
	}

	// 1. Venues: unique keys, valid blueprints
	byKey := make(map[string]*Venue, len(u.Venues))
	for i := range u.Venues {
		v := &u.Venues[i]
		if v.Key == "" {
			return fmt.Errorf("venue #%d has no key", i)
		}
		if _, dup := byKey[v.Key]; dup {
			return fmt.Errorf("duplicate venue key %q", v.Key)
		}
		if v.Capacity <= 0 {
			return fmt.Errorf("venue %q: capacity must be positive", v.Key)
		}
		if err := v.Layout.Validate(); err != nil {
			return fmt.Errorf("venue %q layout: %w", v.Key, err)
		}
		byKey[v.Key] = v
	}

	// 2. The chain: next pointers resolve, capacities strictly increase,
	//    and walking from any venue terminates.
	for _, v := range u.Venues {
		seen := map[string]bool{v.Key: true}
		cur := byKey[v.Key]
		for cur.Next != "" {
			next, ok := byKey[cur.Next]
			if !ok {
				return fmt.Errorf("venue %q: next venue %q does not exist", cur.Key, cur.Next)
			}
			if next.Capacity <= cur.Capacity {
				return fmt.Errorf("venue %q: capacity %d does not exceed %q's %d", next.Key, next.Capacity, cur.Key, cur.Capacity)
			}
			if seen[next.Key] {
				return fmt.Errorf("venue chain loops back to %q", next.Key)
			}
			seen[next.Key] = true
			cur = next
		}
	}
	if _, ok := byKey[b.StartVenue]; !ok {
		return fmt.Errorf("start venue %q does not exist", b.StartVenue)
	}

	// 3. Staff table
	staffKeys := make(map[string]bool, len(u.Staff))
	for _, s := range u.Staff {
		if s.Key == "" {
			return errors.New("staff role without key")
		}
		if staffKeys[s.Key] {
			return fmt.Errorf("duplicate staff role %q", s.Key)
		}
		staffKeys[s.Key] = true
		switch s.Resource {
		case ResourceMoney, ResourceMembers, ResourceSpirit:
		default:
			return fmt.Errorf("staff role %q: unknown resource %q", s.Key, s.Resource)
		}
		if s.Cost < 0 {
			return fmt.Errorf("staff role %q: negative cost", s.Key)
		}
	}

	// 4. Actions
	a := u.Actions
	if a.OutreachMinMembers < 0 || a.OutreachMaxMembers < a.OutreachMinMembers {
		return fmt.Errorf("outreach members range [%d,%d] is invalid", a.OutreachMinMembers, a.OutreachMaxMembers)
	}
	return nil
}
