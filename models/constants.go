package models

// DynamoDB table names
const (
	GamesTable        = "Games"
	RSVPsTable        = "RSVPs"
	UsersTable        = "Users"
	ChatTable         = "Chat"
	WeatherCacheTable = "WeatherCache"
)

// RSVP statuses. A user with no RSVP record for a game is "no response",
// which is derived, never stored.
const (
	StatusAttending = "attending"
	StatusMaybe     = "maybe"
	StatusDeclined  = "declined"
)

// ChatRoomLobby is the single shared chat room.
const ChatRoomLobby = "lobby"

// MaxChatMessageLength caps the chat message body.
const MaxChatMessageLength = 500

// GameDateWindowDays is how far out a game may be scheduled, inclusive.
const GameDateWindowDays = 90
