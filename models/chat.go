package models

// ChatMessage is one message in the shared lobby chat. Messages older than
// seven days are eligible for pruning by the retention sweeper.
type ChatMessage struct {
	RoomID    string `dynamodbav:"roomId" json:"-"`
	MessageID string `dynamodbav:"messageId" json:"id"`
	Message   string `dynamodbav:"message" json:"message"`
	UserUID   string `dynamodbav:"userUid" json:"userUid"`
	UserName  string `dynamodbav:"userName" json:"userName"`
	UserPhoto string `dynamodbav:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}
