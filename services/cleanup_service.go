package services

import (
	"context"
	"log"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// chatRetention is how long chat messages stay around before the sweeper
// removes them.
const chatRetention = 7 * 24 * time.Hour

// CleanupService removes games whose start time has passed and chat
// messages older than the retention window. Both sweeps are best effort:
// an item that fails to delete is logged and retried on the next run.
type CleanupService struct {
	Dynamo DynamoAPI
	RSVPs  *RSVPService
	Clock  func() time.Time
}

func (s *CleanupService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// SweepPastGames deletes every game strictly in the past, along with its
// RSVPs. The cascade is best effort, same as a manual delete: a failed
// RSVP batch still lets the parent game go. Returns the number of games
// removed.
func (s *CleanupService) SweepPastGames(ctx context.Context) (int, error) {
	var games []models.Game
	if err := s.Dynamo.ScanItems(ctx, models.GamesTable, &games); err != nil {
		return 0, err
	}

	now := s.now()
	deleted := 0
	for _, game := range games {
		if !utils.IsGameInPast(game.Date, game.Time, now) {
			continue
		}

		if _, err := s.RSVPs.DeleteGameRSVPs(ctx, game.GameID); err != nil {
			log.Printf("⚠️ RSVP cascade for past game %s incomplete: %v", game.GameID, err)
		}

		key := map[string]types.AttributeValue{
			"gameId": &types.AttributeValueMemberS{Value: game.GameID},
		}
		if err := s.Dynamo.DeleteItem(ctx, models.GamesTable, key); err != nil {
			log.Printf("⚠️ Failed to delete past game %s: %v", game.GameID, err)
			continue
		}

		log.Printf("🗑️ Removed past game %s (%s %s)", game.GameID, game.Date, game.Time)
		deleted++
	}
	return deleted, nil
}

// SweepOldChat deletes chat messages older than the retention window.
// Returns the number of messages removed.
func (s *CleanupService) SweepOldChat(ctx context.Context) (int, error) {
	var messages []models.ChatMessage
	if err := s.Dynamo.ScanItems(ctx, models.ChatTable, &messages); err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-chatRetention)
	deleted := 0
	for _, msg := range messages {
		createdAt, err := time.Parse(time.RFC3339, msg.CreatedAt)
		if err != nil || !createdAt.Before(cutoff) {
			continue
		}

		key := map[string]types.AttributeValue{
			"roomId":    &types.AttributeValueMemberS{Value: msg.RoomID},
			"messageId": &types.AttributeValueMemberS{Value: msg.MessageID},
		}
		if err := s.Dynamo.DeleteItem(ctx, models.ChatTable, key); err != nil {
			log.Printf("⚠️ Failed to delete old chat message %s: %v", msg.MessageID, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
