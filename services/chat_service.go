package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// recentMessageLimit caps how many messages a lobby fetch returns.
const recentMessageLimit = 50

// ChatService stores and retrieves lobby chat messages.
type ChatService struct {
	Dynamo DynamoAPI
	Clock  func() time.Time
}

func (s *ChatService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// SendMessage validates and persists a message in the lobby room.
func (s *ChatService) SendMessage(ctx context.Context, user models.AuthUser, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("message", "must not be empty")
	}
	if len(text) > models.MaxChatMessageLength {
		return nil, models.NewValidationError("message", "must be at most 500 characters")
	}

	msg := models.ChatMessage{
		RoomID:    models.ChatRoomLobby,
		MessageID: uuid.NewString(),
		Message:   text,
		UserUID:   user.UID,
		UserName:  user.Name,
		UserPhoto: user.Photo,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.ChatTable, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetRecentMessages returns the newest lobby messages, most recent first.
// The sort key is the message id, so the whole partition is read and
// ordered by timestamp in memory; the retention sweeper keeps the
// partition small.
func (s *ChatService) GetRecentMessages(ctx context.Context) ([]models.ChatMessage, error) {
	values := map[string]types.AttributeValue{
		":roomId": &types.AttributeValueMemberS{Value: models.ChatRoomLobby},
	}
	items, err := s.Dynamo.QueryItems(ctx, models.ChatTable, "roomId = :roomId", values, nil, 0)
	if err != nil {
		return nil, err
	}

	messages := make([]models.ChatMessage, 0, len(items))
	for _, item := range items {
		var msg models.ChatMessage
		if err := attributevalue.UnmarshalMap(item, &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt > messages[j].CreatedAt
	})
	if len(messages) > recentMessageLimit {
		messages = messages[:recentMessageLimit]
	}
	return messages, nil
}
