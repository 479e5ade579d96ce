package models

// RSVP is a user's per-game response record. Logically keyed by the pair
// (gameId, userUid); at most one record per pair, enforced by
// read-before-write upsert in the RSVP service, not by the table.
type RSVP struct {
	GameID      string `dynamodbav:"gameId" json:"gameId"`
	RSVPID      string `dynamodbav:"rsvpId" json:"rsvpId"`
	UserUID     string `dynamodbav:"userUid" json:"userUid"`
	UserName    string `dynamodbav:"userName" json:"userName"`
	UserPhoto   string `dynamodbav:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	UserEmail   string `dynamodbav:"userEmail,omitempty" json:"-"`
	Status      string `dynamodbav:"status" json:"status"`
	ArrivalTime string `dynamodbav:"arrivalTime,omitempty" json:"arrivalTime,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// Roster is the derived grouping of RSVPs (and non-responders) for one game.
type Roster struct {
	Attending  []RSVP        `json:"attending"`
	Maybe      []RSVP        `json:"maybe"`
	Declined   []RSVP        `json:"declined"`
	NoResponse []UserProfile `json:"noResponse"`
}
