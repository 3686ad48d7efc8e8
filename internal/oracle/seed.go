package oracle

// SeedEvents is the static event dataset loaded at startup when no external
// oracle database is configured.
func SeedEvents() []Event {
	return []Event{
		{ID: 1, Name: "Programming Contest 2024", Organizer: "Tech University"},
		{ID: 2, Name: "Hackathon 2024", Organizer: "Dev Community"},
		{ID: 3, Name: "AI Competition", Organizer: "AI Institute"},
	}
}

// SeedParticipants mirrors SeedEvents with the ranked participant records.
func SeedParticipants() []Participant {
	return []Participant{
		{EventID: 1, Name: "John Doe", Rank: 1},
		{EventID: 1, Name: "Jane Smith", Rank: 2},
		{EventID: 2, Name: "Bob Johnson", Rank: 1},
		{EventID: 3, Name: "Alice Brown", Rank: 3},
	}
}
