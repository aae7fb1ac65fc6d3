/*
Package game
File: view.go
Description:
    Read models for presentation clients. Resources are rounded down for
    display; the underlying state keeps its fractions.
*/

package game

// StaffView is one row of the staffing panel.
type StaffView struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Owned       int     `json:"owned"`
	CanAfford   bool    `json:"can_afford"`
}

// StateView is what the HUD and menus display.
type StateView struct {
	Money     int64       `json:"money"`
	Members   int64       `json:"members"`
	Spirit    int64       `json:"spirit"`
	Capacity  int         `json:"capacity"`
	Day       int         `json:"day"`
	Week      int         `json:"week"`
	VenueKey  string      `json:"venue_key"`
	VenueName string      `json:"venue_name"`
	Messages  []string    `json:"messages"`
	Staff     []StaffView `json:"staff"`

	NextVenueName string  `json:"next_venue_name,omitempty"`
	UpgradeCost   float64 `json:"upgrade_cost,omitempty"`
	CanUpgrade    bool    `json:"can_upgrade"`
	CanService    bool    `json:"can_service"`
	CanOutreach   bool    `json:"can_outreach"`
}

// NewStateView builds the display model for st under u.
func NewStateView(u *Universe, st State) StateView {
	view := StateView{
		Money:       Displayed(st.Money),
		Members:     Displayed(st.Members),
		Spirit:      Displayed(st.Spirit),
		Day:         st.Day,
		Week:        st.Week,
		VenueKey:    st.Venue,
		VenueName:   st.Venue,
		Messages:    append([]string(nil), st.Messages...),
		Staff:       make([]StaffView, 0, len(u.Staff)),
		CanService:  st.Spirit >= u.Actions.ServiceSpiritCost,
		CanOutreach: st.Money >= u.Actions.OutreachCost,
	}

	if v := u.GetVenue(st.Venue); v != nil {
		view.VenueName = v.Name
		view.Capacity = v.Capacity
		if next := u.NextVenue(v.Key); next != nil {
			view.NextVenueName = next.Name
			view.UpgradeCost = v.UpgradeCost
			view.CanUpgrade = st.Money >= v.UpgradeCost
		}
	}

	for _, r := range u.Staff {
		view.Staff = append(view.Staff, StaffView{
			Key:         r.Key,
			Name:        r.Name,
			Description: r.Description,
			Cost:        r.Cost,
			Owned:       st.Staff[r.Key],
			CanAfford:   st.Money >= r.Cost,
		})
	}
	return view
}
