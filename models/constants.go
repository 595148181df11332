package models

// ✅ DynamoDB table names
const (
	UsersTable    = "Users"
	PetsTable     = "Pets"
	MatchesTable  = "Matches"
	MessagesTable = "Messages"
)

// ✅ Secondary indexes
const (
	MatchesViewerIndex = "viewerId-index"
	MatchesOwnerIndex  = "ownerId-index"
)

// ✅ Match statuses
const (
	MatchStatusActive   = "active"
	MatchStatusArchived = "archived"
)

// TimestampLayout is a fixed-width RFC3339 layout, so sort keys order lexically
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
