package domain

// Channel is one row of the program guide
type Channel struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Shows  []Show `json:"shows"`
}

// Show is a single scheduled program on a channel
type Show struct {
	Start       string `json:"start"`    // clock label, e.g. "12:30 PM"
	Duration    int    `json:"duration"` // minutes
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Guide is the full guide document backing the grid
type Guide struct {
	Date      string    `json:"date"` // MM/DD/YY
	AdText    string    `json:"ad_text"`
	TimeSlots []string  `json:"time_slots"`
	Channels  []Channel `json:"channels"`
}

// ChannelByNumber returns the channel with the given number, if present.
func (g *Guide) ChannelByNumber(number string) (*Channel, bool) {
	for i := range g.Channels {
		if g.Channels[i].Number == number {
			return &g.Channels[i], true
		}
	}
	return nil, false
}
