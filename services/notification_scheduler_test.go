package services

import (
	"context"
	"testing"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"
)

func newSchedulerFixture(clock func() time.Time) (*NotificationScheduler, *fakeEmailer, *fakeDynamo) {
	store := newFakeDynamo()
	users := &UserProfileService{Dynamo: store}
	rsvps := &RSVPService{Dynamo: store, Users: users}
	games := &GameService{Dynamo: store, RSVPs: rsvps, Clock: clock}
	emailer := &fakeEmailer{}

	scheduler := NewNotificationScheduler(games, rsvps, users, emailer)
	scheduler.Clock = clock
	return scheduler, emailer, store
}

func seedUser(t *testing.T, store *fakeDynamo, profile models.UserProfile) {
	t.Helper()
	if err := store.PutItem(context.Background(), models.UsersTable, profile); err != nil {
		t.Fatalf("seed user %s: %v", profile.UserID, err)
	}
}

func TestSendGameChangeNotificationsRateLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	scheduler, emailer, store := newSchedulerFixture(fixedClock(now))

	game := models.Game{GameID: "g1", Title: "Court Game", Date: "2026-03-14", Time: "6:00 PM"}
	seedUser(t, store, models.UserProfile{
		UserID: "u1",
		Email:  "u1@example.com",
		EmailPreferences: models.EmailPreferences{
			GameChangeNotifications: true,
		},
	})
	if err := store.PutItem(ctx, models.RSVPsTable, models.RSVP{
		GameID: "g1", RSVPID: "r1", UserUID: "u1", Status: models.StatusAttending, ArrivalTime: "6:00 PM",
	}); err != nil {
		t.Fatalf("seed rsvp: %v", err)
	}

	for i := 0; i < 3; i++ {
		scheduler.SendGameChangeNotifications(ctx, game, "Time changed to 7:00 PM")
	}
	if len(emailer.gameChanges) != 2 {
		t.Errorf("sent %d change notifications in one hour, want 2", len(emailer.gameChanges))
	}

	// A new clock hour resets the budget.
	scheduler.Clock = fixedClock(now.Add(time.Hour))
	scheduler.SendGameChangeNotifications(ctx, game, "Time changed to 8:00 PM")
	if len(emailer.gameChanges) != 3 {
		t.Errorf("sent %d total after hour rollover, want 3", len(emailer.gameChanges))
	}
}

func TestChangeNotificationsWithoutAttendeesKeepBudget(t *testing.T) {
	ctx := context.Background()
	scheduler, emailer, store := newSchedulerFixture(fixedClock(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)))

	game := models.Game{GameID: "g1", Title: "Court Game", Date: "2026-03-14", Time: "6:00 PM"}

	// Edits while nobody is attending are no-ops and must not eat into
	// the hourly budget.
	scheduler.SendGameChangeNotifications(ctx, game, "Time changed to 7:00 PM")
	scheduler.SendGameChangeNotifications(ctx, game, "Time changed to 8:00 PM")
	if len(emailer.gameChanges) != 0 {
		t.Fatalf("sent %d notifications with no attendees, want 0", len(emailer.gameChanges))
	}

	seedUser(t, store, models.UserProfile{
		UserID: "u1",
		Email:  "u1@example.com",
		EmailPreferences: models.EmailPreferences{
			GameChangeNotifications: true,
		},
	})
	if err := store.PutItem(ctx, models.RSVPsTable, models.RSVP{
		GameID: "g1", RSVPID: "r1", UserUID: "u1", Status: models.StatusAttending, ArrivalTime: "6:00 PM",
	}); err != nil {
		t.Fatalf("seed rsvp: %v", err)
	}

	scheduler.SendGameChangeNotifications(ctx, game, "Location changed to Simonds Park")
	if len(emailer.gameChanges) != 1 {
		t.Errorf("sent %d notifications once an attendee joined, want 1", len(emailer.gameChanges))
	}
}

func TestSendGameChangeNotificationsFilters(t *testing.T) {
	ctx := context.Background()
	scheduler, emailer, store := newSchedulerFixture(fixedClock(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)))

	game := models.Game{GameID: "g1", Title: "Court Game"}
	seedUser(t, store, models.UserProfile{UserID: "in", Email: "in@example.com",
		EmailPreferences: models.EmailPreferences{GameChangeNotifications: true}})
	seedUser(t, store, models.UserProfile{UserID: "opted-out", Email: "out@example.com"})
	seedUser(t, store, models.UserProfile{UserID: "no-email",
		EmailPreferences: models.EmailPreferences{GameChangeNotifications: true}})

	rsvps := []models.RSVP{
		{GameID: "g1", RSVPID: "r1", UserUID: "in", Status: models.StatusAttending, ArrivalTime: "6:00 PM"},
		{GameID: "g1", RSVPID: "r2", UserUID: "opted-out", Status: models.StatusAttending, ArrivalTime: "6:00 PM"},
		{GameID: "g1", RSVPID: "r3", UserUID: "no-email", Status: models.StatusAttending, ArrivalTime: "6:00 PM"},
		{GameID: "g1", RSVPID: "r4", UserUID: "decliner", Status: models.StatusDeclined},
	}
	for _, r := range rsvps {
		if err := store.PutItem(ctx, models.RSVPsTable, r); err != nil {
			t.Fatalf("seed rsvp: %v", err)
		}
	}

	scheduler.SendGameChangeNotifications(ctx, game, "Location changed to Simonds Park")

	if len(emailer.gameChanges) != 1 || emailer.gameChanges[0] != "in@example.com" {
		t.Errorf("change notifications went to %v, want only in@example.com", emailer.gameChanges)
	}
}

func TestDailyDigest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	scheduler, emailer, store := newSchedulerFixture(fixedClock(now))

	if err := store.PutItem(ctx, models.GamesTable, models.Game{
		GameID: "g1", Title: "Court Game", Date: "2026-03-11", Time: "6:00 PM", OrganizerUID: "org",
	}); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	// Same-day and far-future games are not part of tomorrow's digest.
	if err := store.PutItem(ctx, models.GamesTable, models.Game{
		GameID: "g2", Title: "Today Game", Date: "2026-03-10", Time: "9:00 PM",
	}); err != nil {
		t.Fatalf("seed game: %v", err)
	}

	seedUser(t, store, models.UserProfile{UserID: "silent", Email: "silent@example.com",
		EmailPreferences: models.EmailPreferences{RSVPReminders: true}})
	seedUser(t, store, models.UserProfile{UserID: "going", Email: "going@example.com",
		EmailPreferences: models.EmailPreferences{AttendanceReminders: true}})
	seedUser(t, store, models.UserProfile{UserID: "unsubscribed", Email: "unsub@example.com"})
	seedUser(t, store, models.UserProfile{UserID: "no-email",
		EmailPreferences: models.EmailPreferences{RSVPReminders: true}})

	if err := store.PutItem(ctx, models.RSVPsTable, models.RSVP{
		GameID: "g1", RSVPID: "r1", UserUID: "going", Status: models.StatusAttending, ArrivalTime: "6:00 PM",
	}); err != nil {
		t.Fatalf("seed rsvp: %v", err)
	}

	scheduler.CheckAndSend(ctx)

	if len(emailer.rsvp) != 1 || emailer.rsvp[0] != "silent@example.com" {
		t.Errorf("RSVP reminders went to %v, want only silent@example.com", emailer.rsvp)
	}
	if len(emailer.attendance) != 1 || emailer.attendance[0] != "going@example.com" {
		t.Errorf("attendance reminders went to %v, want only going@example.com", emailer.attendance)
	}

	// Later ticks in the same day are guarded off.
	scheduler.CheckAndSend(ctx)
	if len(emailer.rsvp) != 1 || len(emailer.attendance) != 1 {
		t.Error("digest fired twice in one day")
	}
}

func TestDigestOnlyAtDigestMinute(t *testing.T) {
	ctx := context.Background()
	scheduler, emailer, store := newSchedulerFixture(fixedClock(time.Date(2026, 3, 10, 16, 59, 0, 0, time.UTC)))

	if err := store.PutItem(ctx, models.GamesTable, models.Game{
		GameID: "g1", Title: "Court Game", Date: "2026-03-11", Time: "6:00 PM",
	}); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	seedUser(t, store, models.UserProfile{UserID: "silent", Email: "silent@example.com",
		EmailPreferences: models.EmailPreferences{RSVPReminders: true}})

	scheduler.CheckAndSend(ctx)
	if len(emailer.rsvp) != 0 {
		t.Errorf("digest fired at 16:59, sent %v", emailer.rsvp)
	}
}
