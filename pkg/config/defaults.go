package config

// DefaultTabs returns the tabs of the "My Network" screen.
func DefaultTabs() []TabConfig {
	return []TabConfig{
		{
			ID:    "connections",
			Title: "Connections",
			Count: 128,
			Body: `# Connections

People you follow who follow you back. Start a chat or invite them to a
room from their profile.`,
		},
		{
			ID:    "requests",
			Title: "Requests",
			Count: 3,
			Body: `# Requests

Pending follow requests. Accepting a request adds the person to your
connections.`,
		},
		{
			ID:    "following",
			Title: "Following",
			Count: 1204,
			Body: `# Following

Everyone you follow. You'll be notified when they start or join a room.`,
		},
		{
			ID:    "available",
			Title: "Available to chat",
			Count: -1,
			Body: `# Available to chat

Connections who marked themselves as available right now.`,
		},
		{
			ID:    "events",
			Title: "Upcoming events",
			Count: -1,
			Body: `# Upcoming events

Events hosted by your clubs and connections.`,
		},
		{
			ID:    "clubs",
			Title: "Clubs",
			Count: 7,
			Body: `# Clubs

Clubs you're a member of.`,
		},
	}
}
