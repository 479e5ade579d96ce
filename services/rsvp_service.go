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

// RSVPService reconciles per-(game,user) response records. The one-record-
// per-pair invariant is enforced here by read-before-write upsert; the table
// itself does not know about it.
type RSVPService struct {
	Dynamo DynamoAPI
	Users  *UserProfileService
	Clock  func() time.Time
}

func (s *RSVPService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// SetResponse records or replaces the user's response for a game. The
// display name snapshot is refreshed from the user's current profile on
// every write, so a username change propagates on the next RSVP.
// arrivalTime is required for "attending" and ignored for everything else.
func (s *RSVPService) SetResponse(ctx context.Context, gameID string, user models.AuthUser, status, arrivalTime string) (*models.RSVP, error) {
	switch status {
	case models.StatusAttending, models.StatusMaybe, models.StatusDeclined:
	default:
		return nil, models.NewValidationError("status", "must be attending, maybe or declined")
	}

	if status == models.StatusAttending {
		norm, err := utils.NormalizeClock(strings.TrimSpace(arrivalTime))
		if err != nil {
			return nil, models.NewValidationError("arrivalTime", "required when attending")
		}
		arrivalTime = norm
	} else {
		arrivalTime = ""
	}

	name := user.Name
	if profile, err := s.Users.GetUserProfile(ctx, user.UID); err == nil {
		if dn := profile.DisplayName(); dn != "" {
			name = dn
		}
	}

	now := s.now().UTC().Format(time.RFC3339)

	existing, err := s.GetUserRSVP(ctx, gameID, user.UID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		key := map[string]types.AttributeValue{
			"gameId": &types.AttributeValueMemberS{Value: existing.GameID},
			"rsvpId": &types.AttributeValueMemberS{Value: existing.RSVPID},
		}
		updated, err := s.Dynamo.UpdateItem(ctx, models.RSVPsTable,
			"SET #userName = :userName, #status = :status, #arrivalTime = :arrivalTime, #updatedAt = :updatedAt",
			key,
			map[string]types.AttributeValue{
				":userName":    &types.AttributeValueMemberS{Value: name},
				":status":      &types.AttributeValueMemberS{Value: status},
				":arrivalTime": &types.AttributeValueMemberS{Value: arrivalTime},
				":updatedAt":   &types.AttributeValueMemberS{Value: now},
			},
			map[string]string{
				"#userName":    "userName",
				"#status":      "status",
				"#arrivalTime": "arrivalTime",
				"#updatedAt":   "updatedAt",
			},
		)
		if err != nil {
			return nil, err
		}

		var rsvp models.RSVP
		if err := attributevalue.UnmarshalMap(updated, &rsvp); err != nil {
			return nil, err
		}
		return &rsvp, nil
	}

	rsvp := models.RSVP{
		GameID:      gameID,
		RSVPID:      uuid.New().String(),
		UserUID:     user.UID,
		UserName:    name,
		UserPhoto:   user.Photo,
		UserEmail:   user.Email,
		Status:      status,
		ArrivalTime: arrivalTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Dynamo.PutItem(ctx, models.RSVPsTable, rsvp); err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ClearResponse deletes the user's RSVP for the game, returning the user to
// "no response". No-op when nothing was recorded.
func (s *RSVPService) ClearResponse(ctx context.Context, gameID, userID string) error {
	existing, err := s.GetUserRSVP(ctx, gameID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	key := map[string]types.AttributeValue{
		"gameId": &types.AttributeValueMemberS{Value: existing.GameID},
		"rsvpId": &types.AttributeValueMemberS{Value: existing.RSVPID},
	}
	return s.Dynamo.DeleteItem(ctx, models.RSVPsTable, key)
}

// GetUserRSVP returns the user's RSVP for the game, or nil when there is none.
func (s *RSVPService) GetUserRSVP(ctx context.Context, gameID, userID string) (*models.RSVP, error) {
	rsvps, err := s.GetGameRSVPs(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for i := range rsvps {
		if rsvps[i].UserUID == userID {
			return &rsvps[i], nil
		}
	}
	return nil, nil
}

// GetGameRSVPs fetches all RSVPs for a game.
func (s *RSVPService) GetGameRSVPs(ctx context.Context, gameID string) ([]models.RSVP, error) {
	keyCondition := "gameId = :gameId"
	expressionValues := map[string]types.AttributeValue{
		":gameId": &types.AttributeValueMemberS{Value: gameID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.RSVPsTable, keyCondition, expressionValues, nil, 200)
	if err != nil {
		return nil, err
	}

	var rsvps []models.RSVP
	if err := attributevalue.UnmarshalListOfMaps(items, &rsvps); err != nil {
		return nil, err
	}
	return rsvps, nil
}

// ListAllRSVPs returns every RSVP across all games; the live feed joins them
// against the game list in one pass.
func (s *RSVPService) ListAllRSVPs(ctx context.Context) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	if err := s.Dynamo.ScanItems(ctx, models.RSVPsTable, &rsvps); err != nil {
		return nil, err
	}
	return rsvps, nil
}

// DeleteGameRSVPs removes every RSVP referencing the game. Used for the
// delete cascade; best effort by contract.
func (s *RSVPService) DeleteGameRSVPs(ctx context.Context, gameID string) (int, error) {
	keyCondition := "gameId = :gameId"
	expressionValues := map[string]types.AttributeValue{
		":gameId": &types.AttributeValueMemberS{Value: gameID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.RSVPsTable, keyCondition, expressionValues, nil, 200)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(items))
	for _, item := range items {
		keys = append(keys, map[string]types.AttributeValue{
			"gameId": &types.AttributeValueMemberS{Value: utils.ExtractString(item, "gameId")},
			"rsvpId": &types.AttributeValueMemberS{Value: utils.ExtractString(item, "rsvpId")},
		})
	}

	if err := s.Dynamo.BatchDeleteItems(ctx, models.RSVPsTable, keys); err != nil {
		return 0, err
	}
	log.Printf("🗑️ Deleted %d RSVPs for game %s", len(keys), gameID)
	return len(keys), nil
}

// RosterFor partitions the game's responses against the full user directory.
func (s *RSVPService) RosterFor(ctx context.Context, gameID string) (*models.Roster, error) {
	rsvps, err := s.GetGameRSVPs(ctx, gameID)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	roster := BuildRoster(rsvps, users)
	return &roster, nil
}

// BuildRoster is the pure derivation: attending sorted by arrival time
// (insertion order on ties), maybe and declined by display name, and
// no-response computed as the directory minus anyone with an RSVP.
func BuildRoster(rsvps []models.RSVP, users []models.UserProfile) models.Roster {
	roster := models.Roster{
		Attending:  []models.RSVP{},
		Maybe:      []models.RSVP{},
		Declined:   []models.RSVP{},
		NoResponse: []models.UserProfile{},
	}

	responded := make(map[string]bool, len(rsvps))
	for _, rsvp := range rsvps {
		responded[rsvp.UserUID] = true
		switch rsvp.Status {
		case models.StatusAttending:
			roster.Attending = append(roster.Attending, rsvp)
		case models.StatusMaybe:
			roster.Maybe = append(roster.Maybe, rsvp)
		case models.StatusDeclined:
			roster.Declined = append(roster.Declined, rsvp)
		}
	}

	sort.SliceStable(roster.Attending, func(i, j int) bool {
		ti, erri := utils.ParseClock(roster.Attending[i].ArrivalTime)
		tj, errj := utils.ParseClock(roster.Attending[j].ArrivalTime)
		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}
		return ti.Before(tj)
	})
	byName := func(rs []models.RSVP) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(rs[i].UserName) < strings.ToLower(rs[j].UserName)
		}
	}
	sort.SliceStable(roster.Maybe, byName(roster.Maybe))
	sort.SliceStable(roster.Declined, byName(roster.Declined))

	for _, user := range users {
		if !responded[user.UserID] {
			roster.NoResponse = append(roster.NoResponse, user)
		}
	}
	sort.SliceStable(roster.NoResponse, func(i, j int) bool {
		return strings.ToLower(roster.NoResponse[i].DisplayName()) < strings.ToLower(roster.NoResponse[j].DisplayName())
	})

	return roster
}
