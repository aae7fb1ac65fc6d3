/*
Package game
File: actions.go
Description:
    The action layer: player commands that check their guard first and only
    then invoke reducer transitions. A failed guard leaves the numbers
    untouched, logs an explanatory message into the state and returns a
    sentinel error the caller can test with errors.Is.
*/

package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientSpirit = errors.New("insufficient spirit")
	ErrNoNextVenue        = errors.New("already at the final venue")
	ErrUnknownStaff       = errors.New("unknown staff role")
)

// HoldService spends spirit and collects tithes from the congregation.
func HoldService(u *Universe, st *State) error {
	cfg := u.Actions
	if st.Spirit < cfg.ServiceSpiritCost {
		st.LogMessage(u, "Not enough Spirit to hold service!")
		return ErrInsufficientSpirit
	}

	tithes := math.Floor(st.Members*cfg.TithePerMember) + cfg.TitheBase
	st.AddSpirit(-cfg.ServiceSpiritCost)
	st.AddMoney(tithes)
	st.LogMessage(u, fmt.Sprintf("Held Service! Collected $%d.", int64(tithes)))
	return nil
}

// Outreach spends money to bring in a random handful of new members.
// It returns how many joined before capacity clamping.
func Outreach(u *Universe, st *State, rng *rand.Rand) (int, error) {
	cfg := u.Actions
	if st.Money < cfg.OutreachCost {
		st.LogMessage(u, "Not enough money for outreach!")
		return 0, ErrInsufficientFunds
	}

	joined := cfg.OutreachMinMembers + rng.Intn(cfg.OutreachMaxMembers-cfg.OutreachMinMembers+1)
	st.AddMoney(-cfg.OutreachCost)
	st.AddMembers(u, float64(joined))
	st.LogMessage(u, fmt.Sprintf("Outreach successful! +%d members.", joined))
	return joined, nil
}

// UpgradeVenue moves to the next venue in the chain if it exists and the
// upgrade cost can be paid.
func UpgradeVenue(u *Universe, st *State) error {
	cur := u.GetVenue(st.Venue)
	next := u.NextVenue(st.Venue)
	if cur == nil || next == nil {
		st.LogMessage(u, "There is nowhere bigger to move to!")
		return ErrNoNextVenue
	}
	if st.Money < cur.UpgradeCost {
		st.LogMessage(u, fmt.Sprintf("Need $%d to move to %s!", int64(cur.UpgradeCost), next.Name))
		return ErrInsufficientFunds
	}

	st.UpgradeVenue(u, next.Key, cur.UpgradeCost)
	return nil
}

// Hire buys one more member of staff for role.
// Unknown roles are rejected without touching the log: that is a caller
// bug, not a player-facing condition.
func Hire(u *Universe, st *State, role string) error {
	r := u.GetStaff(role)
	if r == nil {
		return fmt.Errorf("%w: %q", ErrUnknownStaff, role)
	}
	if st.Money < r.Cost {
		st.LogMessage(u, fmt.Sprintf("Not enough money to hire %s!", r.Name))
		return ErrInsufficientFunds
	}

	st.HireStaff(u, r.Key, r.Cost)
	return nil
}
