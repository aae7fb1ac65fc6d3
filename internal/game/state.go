/*
Package game
File: state.go
Description:
    Creation and copying of the runtime economy state.
    A State is created once per session from the universe's starting
    balance and is afterwards changed only through the transitions in
    economy.go.
*/

package game

// NewState builds the initial economy for a session.
func NewState(u *Universe) State {
	b := u.BalanceConfig
	st := State{
		Money:    b.StartingMoney,
		Members:  clamp(b.StartingMembers, 0, u.Capacity(b.StartVenue)),
		Spirit:   b.StartingSpirit,
		Venue:    b.StartVenue,
		Day:      1,
		Week:     WeekOf(1),
		Messages: []string{},
		Staff:    make(map[string]int, len(u.Staff)),
	}
	for _, s := range u.Staff {
		st.Staff[s.Key] = 0
	}
	if b.WelcomeMessage != "" {
		st.Messages = append(st.Messages, b.WelcomeMessage)
	}
	return st
}

// Clone returns a deep copy, safe to hand to readers.
func (s State) Clone() State {
	out := s
	out.Messages = append([]string(nil), s.Messages...)
	out.Staff = make(map[string]int, len(s.Staff))
	for k, v := range s.Staff {
		out.Staff[k] = v
	}
	return out
}
