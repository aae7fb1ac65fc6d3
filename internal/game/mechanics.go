/*
Package game
File: mechanics.go
Description:
    Lookup helpers and small formulas shared by the reducer, the action
    layer and the read models.
*/

package game

import "math"

// GetVenue returns the venue with the given key, or nil.
func (u *Universe) GetVenue(key string) *Venue {
	for i := range u.Venues {
		if u.Venues[i].Key == key {
			return &u.Venues[i]
		}
	}
	return nil
}

// GetStaff returns the staff role with the given key, or nil.
func (u *Universe) GetStaff(key string) *StaffRole {
	for i := range u.Staff {
		if u.Staff[i].Key == key {
			return &u.Staff[i]
		}
	}
	return nil
}

// NextVenue returns the venue following key in the chain, or nil when key
// is the terminal venue (or unknown).
func (u *Universe) NextVenue(key string) *Venue {
	v := u.GetVenue(key)
	if v == nil || v.Next == "" {
		return nil
	}
	return u.GetVenue(v.Next)
}

// Capacity is the member cap of a venue; unknown venues hold nobody.
func (u *Universe) Capacity(key string) float64 {
	if v := u.GetVenue(key); v != nil {
		return float64(v.Capacity)
	}
	return 0
}

// WeekOf derives the week number from a day count.
func WeekOf(day int) int {
	return day/7 + 1
}

// Displayed rounds a resource down for display. Internal state keeps its
// fractions.
func Displayed(v float64) int64 {
	return int64(math.Floor(v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
