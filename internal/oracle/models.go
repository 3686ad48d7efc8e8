package oracle

// Event is an off-chain event record. Immutable once seeded.
type Event struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Organizer string `json:"organizer"`
}

// Participant is an off-chain standing record: one rank per participant per
// event. Immutable once seeded.
type Participant struct {
	EventID int64  `json:"eventId"`
	Name    string `json:"name"`
	Rank    int    `json:"rank"`
}

// Validation is the oracle's answer to "is this participant eligible for
// this event". Valid is true iff the event exists and a participant record
// exists for it under exactly that name.
type Validation struct {
	Valid       bool         `json:"valid"`
	Reason      string       `json:"reason,omitempty"`
	Event       *Event       `json:"event,omitempty"`
	Participant *Participant `json:"participant,omitempty"`
}
