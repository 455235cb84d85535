// Package inmem keeps every repository in process memory. It backs the
// tests and STORAGE=memory mode.
package inmem

import (
	"sync"

	"rcsinavim/models"
	"rcsinavim/services"
)

// Store holds all tables behind one lock, so a multi-table change such as
// accepting a friend request is atomic.
type Store struct {
	mu sync.RWMutex

	duels       map[string]*models.Duel
	decks       map[string]*models.Deck
	users       map[string]*models.User
	requests    map[string]*models.FriendRequest
	friendships map[string]*models.Friendship
}

func NewStore() *Store {
	return &Store{
		duels:       make(map[string]*models.Duel),
		decks:       make(map[string]*models.Deck),
		users:       make(map[string]*models.User),
		requests:    make(map[string]*models.FriendRequest),
		friendships: make(map[string]*models.Friendship),
	}
}

var (
	_ services.DuelRepository   = (*Store)(nil)
	_ services.DeckRepository   = (*Store)(nil)
	_ services.UserRepository   = (*Store)(nil)
	_ services.FriendRepository = (*Store)(nil)
)
