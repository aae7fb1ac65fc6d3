/*
Package game
File: economy.go
Description:
    The economy reducer: every named transition that may change a State.
    Transitions never fail and never validate business rules; affordability
    and chain checks belong to the action layer (actions.go), which only
    invokes a transition once its guard has passed.
*/

package game

// Tick advances the economy by one simulated day.
// Staff yields are applied, members are clamped to the venue capacity, a
// seventh of the weekly upkeep is charged and the day counter moves on.
// Money may go negative here; there is no bankruptcy transition.
func (s *State) Tick(u *Universe) {
	// 1. Passive generation from staff
	var moneyGain, memberGain, spiritGain float64
	for _, role := range u.Staff {
		n := float64(s.Staff[role.Key])
		switch role.Resource {
		case ResourceMoney:
			moneyGain += n * role.Yield
		case ResourceMembers:
			memberGain += n * role.Yield
		case ResourceSpirit:
			spiritGain += n * role.Yield
		}
	}

	// 2. Members are capped by the current venue
	s.Members = clamp(s.Members+memberGain, 0, u.Capacity(s.Venue))

	// 3. Daily share of the weekly upkeep
	var upkeep float64
	if v := u.GetVenue(s.Venue); v != nil {
		upkeep = v.Upkeep / 7
	}
	s.Money = s.Money + moneyGain - upkeep
	s.Spirit += spiritGain

	// 4. Calendar
	s.Day++
	s.Week = WeekOf(s.Day)
}

// AddMoney applies a signed money delta without clamping.
func (s *State) AddMoney(amount float64) {
	s.Money += amount
}

// AddSpirit applies a signed spirit delta without clamping.
func (s *State) AddSpirit(amount float64) {
	s.Spirit += amount
}

// AddMembers applies a signed members delta, clamped to [0, capacity].
func (s *State) AddMembers(u *Universe, amount float64) {
	s.Members = clamp(s.Members+amount, 0, u.Capacity(s.Venue))
}

// UpgradeVenue pays cost and moves the congregation to venue next.
// The caller has already checked that next follows the current venue and
// that the money is there.
func (s *State) UpgradeVenue(u *Universe, next string, cost float64) {
	s.Money -= cost
	s.Venue = next

	name := next
	if v := u.GetVenue(next); v != nil {
		name = v.Name
	}
	s.LogMessage(u, "Upgraded to "+name+"!")
}

// HireStaff pays cost and adds exactly one member of staff to role.
func (s *State) HireStaff(u *Universe, role string, cost float64) {
	s.Money -= cost
	if s.Staff == nil {
		s.Staff = make(map[string]int)
	}
	s.Staff[role]++

	name := role
	if r := u.GetStaff(role); r != nil {
		name = r.Name
	}
	s.LogMessage(u, "Hired "+name+"!")
}

// LogMessage prepends msg to the log and drops the oldest entries beyond
// the configured cap.
func (s *State) LogMessage(u *Universe, msg string) {
	limit := u.BalanceConfig.MessageLogCap
	if limit <= 0 {
		limit = 1
	}
	msgs := make([]string, 0, limit)
	msgs = append(msgs, msg)
	for _, m := range s.Messages {
		if len(msgs) == limit {
			break
		}
		msgs = append(msgs, m)
	}
	s.Messages = msgs
}
