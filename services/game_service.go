package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// GameService owns the game lifecycle: creation, organizer-only edits and
// deletion with the RSVP cascade.
type GameService struct {
	Dynamo  DynamoAPI
	RSVPs   *RSVPService
	Weather *WeatherService
	Clock   func() time.Time
}

func (s *GameService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// CreateGame validates the request, annotates weather, persists the game and
// auto-RSVPs the organizer as attending at the game's start time.
func (s *GameService) CreateGame(ctx context.Context, ng models.NewGame, user models.AuthUser) (*models.Game, error) {
	location := strings.TrimSpace(ng.Location)
	if location == "" {
		return nil, models.NewValidationError("location", "required")
	}
	if strings.TrimSpace(ng.Date) == "" {
		return nil, models.NewValidationError("date", "required")
	}

	gameTime, err := utils.NormalizeClock(strings.TrimSpace(ng.Time))
	if err != nil {
		return nil, models.NewValidationError("time", "unrecognized time of day")
	}
	if !utils.IsValidGameDate(ng.Date, s.now()) {
		return nil, models.NewValidationError("date", "must be between today and 90 days from now")
	}

	weather := models.Weather{}
	if s.Weather != nil {
		weather = s.Weather.Annotate(ctx, ng.Date, gameTime)
	}

	game := models.Game{
		GameID:         uuid.New().String(),
		Title:          location + " Game",
		Location:       location,
		Address:        strings.TrimSpace(ng.Address),
		Date:           ng.Date,
		Time:           gameTime,
		OrganizerUID:   user.UID,
		OrganizerName:  user.Name,
		OrganizerPhoto: user.Photo,
		OrganizerEmail: user.Email,
		Weather:        weather,
		CreatedAt:      s.now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.GamesTable, game); err != nil {
		return nil, err
	}

	// Organizer always attends their own game, arriving at tip-off.
	if _, err := s.RSVPs.SetResponse(ctx, game.GameID, user, models.StatusAttending, game.Time); err != nil {
		return nil, err
	}

	log.Printf("🏀 Game created: %s on %s at %s by %s", game.Title, game.Date, game.Time, user.UID)
	return &game, nil
}

// GetGame fetches a single game by id.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	key := map[string]types.AttributeValue{
		"gameId": &types.AttributeValueMemberS{Value: gameID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.GamesTable, key)
	if err != nil {
		return nil, err
	}

	var game models.Game
	if err := attributevalue.UnmarshalMap(item, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// GetGames returns every game ordered by date then start time.
func (s *GameService) GetGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := s.Dynamo.ScanItems(ctx, models.GamesTable, &games); err != nil {
		return nil, err
	}
	SortGames(games)
	return games, nil
}

// GetGamesOnDate returns the games scheduled for one calendar date.
func (s *GameService) GetGamesOnDate(ctx context.Context, date string) ([]models.Game, error) {
	games, err := s.GetGames(ctx)
	if err != nil {
		return nil, err
	}
	onDate := games[:0]
	for _, game := range games {
		if game.Date == date {
			onDate = append(onDate, game)
		}
	}
	return onDate, nil
}

// UpdateGameLocation changes where the game is played. Organizer only; the
// caller is responsible for fanning out change notifications.
func (s *GameService) UpdateGameLocation(ctx context.Context, gameID string, user models.AuthUser, newLocation, newAddress string) (*models.Game, error) {
	newLocation = strings.TrimSpace(newLocation)
	if newLocation == "" {
		return nil, models.NewValidationError("location", "required")
	}

	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.OrganizerUID != user.UID {
		return nil, models.ErrNotOrganizer
	}

	key := map[string]types.AttributeValue{
		"gameId": &types.AttributeValueMemberS{Value: gameID},
	}
	updated, err := s.Dynamo.UpdateItem(ctx, models.GamesTable,
		"SET #title = :title, #location = :location, #address = :address, #updatedAt = :updatedAt",
		key,
		map[string]types.AttributeValue{
			":title":     &types.AttributeValueMemberS{Value: newLocation + " Game"},
			":location":  &types.AttributeValueMemberS{Value: newLocation},
			":address":   &types.AttributeValueMemberS{Value: strings.TrimSpace(newAddress)},
			":updatedAt": &types.AttributeValueMemberS{Value: s.now().UTC().Format(time.RFC3339)},
		},
		map[string]string{
			"#title":     "title",
			"#location":  "location",
			"#address":   "address",
			"#updatedAt": "updatedAt",
		},
	)
	if err != nil {
		return nil, err
	}

	var result models.Game
	if err := attributevalue.UnmarshalMap(updated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateGameTime changes the game's start time. Organizer only.
func (s *GameService) UpdateGameTime(ctx context.Context, gameID string, user models.AuthUser, newTime string) (*models.Game, error) {
	normalized, err := utils.NormalizeClock(strings.TrimSpace(newTime))
	if err != nil {
		return nil, models.NewValidationError("time", "unrecognized time of day")
	}

	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.OrganizerUID != user.UID {
		return nil, models.ErrNotOrganizer
	}

	key := map[string]types.AttributeValue{
		"gameId": &types.AttributeValueMemberS{Value: gameID},
	}
	updated, err := s.Dynamo.UpdateItem(ctx, models.GamesTable,
		"SET #time = :time, #updatedAt = :updatedAt",
		key,
		map[string]types.AttributeValue{
			":time":      &types.AttributeValueMemberS{Value: normalized},
			":updatedAt": &types.AttributeValueMemberS{Value: s.now().UTC().Format(time.RFC3339)},
		},
		map[string]string{
			"#time":      "time",
			"#updatedAt": "updatedAt",
		},
	)
	if err != nil {
		return nil, err
	}

	var result models.Game
	if err := attributevalue.UnmarshalMap(updated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteGame removes the game and cascades to its RSVPs. The cascade is not
// transactional: a partial RSVP delete still proceeds to delete the parent.
func (s *GameService) DeleteGame(ctx context.Context, gameID string, user models.AuthUser) error {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if game.OrganizerUID != user.UID {
		return models.ErrNotOrganizer
	}

	if _, err := s.RSVPs.DeleteGameRSVPs(ctx, gameID); err != nil {
		log.Printf("⚠️ RSVP cascade for game %s incomplete: %v", gameID, err)
	}

	key := map[string]types.AttributeValue{
		"gameId": &types.AttributeValueMemberS{Value: gameID},
	}
	if err := s.Dynamo.DeleteItem(ctx, models.GamesTable, key); err != nil {
		return err
	}

	log.Printf("🗑️ Game %s deleted by organizer %s", gameID, user.UID)
	return nil
}

// SortGames orders games by date, then by start time within a date.
func SortGames(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Date != games[j].Date {
			return games[i].Date < games[j].Date
		}
		ti, erri := utils.ParseClock(games[i].Time)
		tj, errj := utils.ParseClock(games[j].Time)
		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}
		return ti.Before(tj)
	})
}
