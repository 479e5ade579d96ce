package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func newCleanupFixture() (*CleanupService, *fakeDynamo) {
	store := newFakeDynamo()
	users := &UserProfileService{Dynamo: store}
	rsvps := &RSVPService{Dynamo: store, Users: users}
	sweeper := &CleanupService{
		Dynamo: store,
		RSVPs:  rsvps,
		Clock:  fixedClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)),
	}
	return sweeper, store
}

func TestSweepPastGames(t *testing.T) {
	ctx := context.Background()
	sweeper, store := newCleanupFixture()

	seed := []models.Game{
		{GameID: "past", Date: "2026-03-09", Time: "6:00 PM"},
		{GameID: "earlier-today", Date: "2026-03-10", Time: "9:00 AM"},
		{GameID: "later-today", Date: "2026-03-10", Time: "6:00 PM"},
		{GameID: "future", Date: "2026-03-12", Time: "6:00 PM"},
	}
	for _, g := range seed {
		if err := store.PutItem(ctx, models.GamesTable, g); err != nil {
			t.Fatalf("seed game: %v", err)
		}
	}
	for _, r := range []models.RSVP{
		{GameID: "past", RSVPID: "r1", UserUID: "u1", Status: models.StatusAttending, ArrivalTime: "6:00 PM"},
		{GameID: "future", RSVPID: "r2", UserUID: "u1", Status: models.StatusAttending, ArrivalTime: "6:00 PM"},
	} {
		if err := store.PutItem(ctx, models.RSVPsTable, r); err != nil {
			t.Fatalf("seed rsvp: %v", err)
		}
	}

	deleted, err := sweeper.SweepPastGames(ctx)
	if err != nil {
		t.Fatalf("SweepPastGames failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted %d games, want 2 (yesterday and earlier today)", deleted)
	}

	var remaining []models.Game
	if err := store.ScanItems(ctx, models.GamesTable, &remaining); err != nil {
		t.Fatalf("scan games: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("%d games remain, want 2", len(remaining))
	}
	for _, g := range remaining {
		if g.GameID == "past" || g.GameID == "earlier-today" {
			t.Errorf("game %s should have been swept", g.GameID)
		}
	}

	// The past game's RSVPs went with it; the future game keeps its own.
	var rsvps []models.RSVP
	if err := store.ScanItems(ctx, models.RSVPsTable, &rsvps); err != nil {
		t.Fatalf("scan rsvps: %v", err)
	}
	if len(rsvps) != 1 || rsvps[0].GameID != "future" {
		t.Errorf("remaining RSVPs = %+v, want only the future game's", rsvps)
	}
}

// brokenBatchStore fails every batch delete, leaving single-item
// operations intact.
type brokenBatchStore struct {
	*fakeDynamo
}

func (b *brokenBatchStore) BatchDeleteItems(ctx context.Context, tableName string, keys []map[string]types.AttributeValue) error {
	return errors.New("batch write throttled")
}

func TestSweepPastGamesProceedsWhenCascadeFails(t *testing.T) {
	ctx := context.Background()
	store := &brokenBatchStore{fakeDynamo: newFakeDynamo()}
	users := &UserProfileService{Dynamo: store}
	rsvps := &RSVPService{Dynamo: store, Users: users}
	sweeper := &CleanupService{
		Dynamo: store,
		RSVPs:  rsvps,
		Clock:  fixedClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)),
	}

	if err := store.PutItem(ctx, models.GamesTable, models.Game{
		GameID: "past", Date: "2026-03-09", Time: "6:00 PM",
	}); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	if err := store.PutItem(ctx, models.RSVPsTable, models.RSVP{
		GameID: "past", RSVPID: "r1", UserUID: "u1", Status: models.StatusAttending, ArrivalTime: "6:00 PM",
	}); err != nil {
		t.Fatalf("seed rsvp: %v", err)
	}

	deleted, err := sweeper.SweepPastGames(ctx)
	if err != nil {
		t.Fatalf("SweepPastGames failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d games, want 1 despite the failed cascade", deleted)
	}
	if n := store.count(models.GamesTable); n != 0 {
		t.Errorf("store holds %d games, want 0", n)
	}
}

func TestSweepOldChat(t *testing.T) {
	ctx := context.Background()
	sweeper, store := newCleanupFixture()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	seed := []models.ChatMessage{
		{RoomID: models.ChatRoomLobby, MessageID: "old", Message: "run it back", CreatedAt: now.AddDate(0, 0, -8).Format(time.RFC3339)},
		{RoomID: models.ChatRoomLobby, MessageID: "recent", Message: "who's in tonight", CreatedAt: now.AddDate(0, 0, -6).Format(time.RFC3339)},
		{RoomID: models.ChatRoomLobby, MessageID: "broken", Message: "??", CreatedAt: "not-a-timestamp"},
	}
	for _, m := range seed {
		if err := store.PutItem(ctx, models.ChatTable, m); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	deleted, err := sweeper.SweepOldChat(ctx)
	if err != nil {
		t.Fatalf("SweepOldChat failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d messages, want 1", deleted)
	}

	var remaining []models.ChatMessage
	if err := store.ScanItems(ctx, models.ChatTable, &remaining); err != nil {
		t.Fatalf("scan chat: %v", err)
	}
	for _, m := range remaining {
		if m.MessageID == "old" {
			t.Error("eight-day-old message should have been swept")
		}
	}
	if len(remaining) != 2 {
		t.Errorf("%d messages remain, want 2 (recent and unparseable)", len(remaining))
	}
}
