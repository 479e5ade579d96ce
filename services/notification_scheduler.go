package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/utils"
)

// EmailSender is the outbound mail surface the scheduler depends on.
type EmailSender interface {
	SendRSVPReminder(ctx context.Context, toEmail, userName string, game models.Game) error
	SendAttendanceReminder(ctx context.Context, toEmail, userName string, game models.Game) error
	SendGameChangeNotification(ctx context.Context, toEmail, userName string, game models.Game, changes string) error
}

// digestHour is when the daily reminder digest goes out.
const digestHour = 17

// maxChangeNotificationsPerHour caps how many change-notification batches
// a single game can trigger in one clock hour.
const maxChangeNotificationsPerHour = 2

// NotificationScheduler drives the daily reminder digest and rate-limits
// game change notifications.
type NotificationScheduler struct {
	Games *GameService
	RSVPs *RSVPService
	Users *UserProfileService
	Email EmailSender
	Clock func() time.Time

	mu             sync.Mutex
	changeCounts   map[string]int
	lastDigestDate string
	stop           chan struct{}
}

func NewNotificationScheduler(games *GameService, rsvps *RSVPService, users *UserProfileService, email EmailSender) *NotificationScheduler {
	return &NotificationScheduler{
		Games:        games,
		RSVPs:        rsvps,
		Users:        users,
		Email:        email,
		changeCounts: make(map[string]int),
		stop:         make(chan struct{}),
	}
}

func (s *NotificationScheduler) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Start begins the minute tick that watches for digest time.
func (s *NotificationScheduler) Start() {
	log.Println("📩 Notification scheduler started")
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		s.CheckAndSend(context.Background())
		for {
			select {
			case <-ticker.C:
				s.CheckAndSend(context.Background())
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *NotificationScheduler) Stop() {
	close(s.stop)
}

// CheckAndSend fires the daily digest when the clock reads exactly the
// digest minute and it has not already fired today.
func (s *NotificationScheduler) CheckAndSend(ctx context.Context) {
	now := s.now()
	if now.Hour() != digestHour || now.Minute() != 0 {
		return
	}

	today := now.Format(utils.DateLayout)
	s.mu.Lock()
	if s.lastDigestDate == today {
		s.mu.Unlock()
		return
	}
	s.lastDigestDate = today
	s.mu.Unlock()

	if err := s.SendDailyDigest(ctx); err != nil {
		log.Printf("❌ Daily digest failed: %v", err)
	}
}

// SendDailyDigest emails reminders for every game happening tomorrow.
// Users who have not responded get an RSVP reminder; confirmed attendees
// get an attendance reminder. Individual send failures are logged and do
// not stop the digest.
func (s *NotificationScheduler) SendDailyDigest(ctx context.Context) error {
	tomorrow := s.now().AddDate(0, 0, 1).Format(utils.DateLayout)
	games, err := s.Games.GetGamesOnDate(ctx, tomorrow)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}

	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, game := range games {
		rsvps, err := s.RSVPs.GetGameRSVPs(ctx, game.GameID)
		if err != nil {
			log.Printf("⚠️ Skipping digest for game %s: %v", game.GameID, err)
			continue
		}

		responded := make(map[string]models.RSVP, len(rsvps))
		for _, rsvp := range rsvps {
			responded[rsvp.UserUID] = rsvp
		}

		for _, user := range users {
			if user.Email == "" {
				continue
			}

			rsvp, hasResponded := responded[user.UserID]
			switch {
			case !hasResponded && user.EmailPreferences.RSVPReminders:
				if err := s.Email.SendRSVPReminder(ctx, user.Email, user.DisplayName(), game); err != nil {
					log.Printf("❌ RSVP reminder to %s failed: %v", user.Email, err)
				}
			case hasResponded && rsvp.Status == models.StatusAttending && user.EmailPreferences.AttendanceReminders:
				if err := s.Email.SendAttendanceReminder(ctx, user.Email, user.DisplayName(), game); err != nil {
					log.Printf("❌ Attendance reminder to %s failed: %v", user.Email, err)
				}
			}
		}
	}

	log.Printf("📩 Daily digest sent for %d game(s) on %s", len(games), tomorrow)
	return nil
}

// SendGameChangeNotifications emails confirmed attendees about an edit to
// a game. At most two batches go out per game per clock hour; further
// edits within the hour are silently dropped. Edits to a game with no
// attendees are a no-op and do not consume the hourly budget.
func (s *NotificationScheduler) SendGameChangeNotifications(ctx context.Context, game models.Game, changes string) {
	now := s.now()
	key := fmt.Sprintf("%s_%d", game.GameID, now.Hour())

	s.mu.Lock()
	s.pruneChangeCounts(now)
	limited := s.changeCounts[key] >= maxChangeNotificationsPerHour
	s.mu.Unlock()
	if limited {
		log.Printf("⚠️ Change notification rate limit hit for game %s", game.GameID)
		return
	}

	rsvps, err := s.RSVPs.GetGameRSVPs(ctx, game.GameID)
	if err != nil {
		log.Printf("❌ Could not load RSVPs for change notification on game %s: %v", game.GameID, err)
		return
	}

	var attendees []models.RSVP
	for _, rsvp := range rsvps {
		if rsvp.Status == models.StatusAttending {
			attendees = append(attendees, rsvp)
		}
	}
	if len(attendees) == 0 {
		return
	}

	sent := 0
	for _, rsvp := range attendees {
		profile, err := s.Users.GetUserProfile(ctx, rsvp.UserUID)
		if err != nil {
			log.Printf("⚠️ No profile for attendee %s: %v", rsvp.UserUID, err)
			continue
		}
		if profile.Email == "" || !profile.EmailPreferences.GameChangeNotifications {
			continue
		}

		if err := s.Email.SendGameChangeNotification(ctx, profile.Email, profile.DisplayName(), game, changes); err != nil {
			log.Printf("❌ Change notification to %s failed: %v", profile.Email, err)
			continue
		}
		sent++
	}

	s.mu.Lock()
	s.changeCounts[key]++
	s.mu.Unlock()

	if sent > 0 {
		log.Printf("📩 Sent %d change notification(s) for game %s: %s", sent, game.GameID, changes)
	}
}

// pruneChangeCounts drops rate-limit entries from earlier hours.
// Caller must hold mu.
func (s *NotificationScheduler) pruneChangeCounts(now time.Time) {
	suffix := fmt.Sprintf("_%d", now.Hour())
	for key := range s.changeCounts {
		if !strings.HasSuffix(key, suffix) {
			delete(s.changeCounts, key)
		}
	}
}
