package models

// Game defines the structure for scheduled pickup games
type Game struct {
	GameID         string  `dynamodbav:"gameId" json:"id"`
	Title          string  `dynamodbav:"title" json:"title"`
	Location       string  `dynamodbav:"location" json:"location"`
	Address        string  `dynamodbav:"address" json:"address"`
	Date           string  `dynamodbav:"date" json:"date"` // YYYY-MM-DD
	Time           string  `dynamodbav:"time" json:"time"` // 12-hour clock, e.g. "11:00 AM"
	OrganizerUID   string  `dynamodbav:"organizerUid" json:"organizerUid"`
	OrganizerName  string  `dynamodbav:"organizerName" json:"organizerName"`
	OrganizerPhoto string  `dynamodbav:"organizerPhoto,omitempty" json:"organizerPhoto,omitempty"`
	OrganizerEmail string  `dynamodbav:"organizerEmail,omitempty" json:"-"`
	Weather        Weather `dynamodbav:"weather" json:"weather"`
	CreatedAt      string  `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string  `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NewGame carries the organizer-supplied fields for game creation.
type NewGame struct {
	Location string `json:"location"`
	Address  string `json:"address"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// GameView is the joined view pushed to the live feed: the game record plus
// its derived roster.
type GameView struct {
	Game
	Roster Roster `json:"roster"`
}
