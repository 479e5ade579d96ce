package services

import (
	"context"
	"log"

	"github.com/arthurarakelov/burlington-ballers/models"
)

// Broadcaster pushes events to connected socket clients. It matches the
// socket.io server surface so the real server drops in directly.
type Broadcaster interface {
	BroadcastToRoom(namespace string, room, event string, args ...interface{}) bool
}

// FeedService assembles full game views and pushes them to socket rooms
// whenever something changes. A nil Broadcast makes every refresh a no-op,
// which keeps the HTTP handlers usable without a socket server.
type FeedService struct {
	Games     *GameService
	RSVPs     *RSVPService
	Users     *UserProfileService
	Chat      *ChatService
	Broadcast Broadcaster
}

// BuildGameViews joins games with their rosters. Games come back in
// chronological order; every view carries a fully partitioned roster.
func BuildGameViews(games []models.Game, rsvps []models.RSVP, users []models.UserProfile) []models.GameView {
	byGame := make(map[string][]models.RSVP)
	for _, rsvp := range rsvps {
		byGame[rsvp.GameID] = append(byGame[rsvp.GameID], rsvp)
	}

	SortGames(games)
	views := make([]models.GameView, 0, len(games))
	for _, game := range games {
		views = append(views, models.GameView{
			Game:   game,
			Roster: BuildRoster(byGame[game.GameID], users),
		})
	}
	return views
}

// RefreshGames rebuilds every game view and broadcasts the result to the
// games room.
func (s *FeedService) RefreshGames(ctx context.Context) {
	if s.Broadcast == nil {
		return
	}

	games, err := s.Games.GetGames(ctx)
	if err != nil {
		log.Printf("⚠️ Feed refresh: failed to load games: %v", err)
		return
	}
	rsvps, err := s.RSVPs.ListAllRSVPs(ctx)
	if err != nil {
		log.Printf("⚠️ Feed refresh: failed to load RSVPs: %v", err)
		return
	}
	users, err := s.Users.ListUsers(ctx)
	if err != nil {
		log.Printf("⚠️ Feed refresh: failed to load users: %v", err)
		return
	}

	views := BuildGameViews(games, rsvps, users)
	s.Broadcast.BroadcastToRoom("/", "games", "games", views)
}

// RefreshChat broadcasts the latest lobby messages to the chat room.
func (s *FeedService) RefreshChat(ctx context.Context) {
	if s.Broadcast == nil {
		return
	}

	messages, err := s.Chat.GetRecentMessages(ctx)
	if err != nil {
		log.Printf("⚠️ Feed refresh: failed to load chat: %v", err)
		return
	}
	s.Broadcast.BroadcastToRoom("/", "chat", "messages", messages)
}
