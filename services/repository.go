// services/repository.go - Storage contracts consumed by the services
package services

import (
	"context"
	"time"

	"rcsinavim/models"
)

// DuelRepository persists duels. Lookups of unknown ids return an error
// wrapping ErrNotFound.
type DuelRepository interface {
	CreateDuel(ctx context.Context, duel *models.Duel) error
	GetDuel(ctx context.Context, id string) (*models.Duel, error)
	ListDuelsByChallenger(ctx context.Context, userID string) ([]models.Duel, error)
	ListDuelsByOpponent(ctx context.Context, userID string) ([]models.Duel, error)

	// UpdateDuel applies fn to the current state of the duel and persists the
	// result slots, status, winner and completion time as one atomic update.
	// Nothing is written when fn returns an error.
	UpdateDuel(ctx context.Context, id string, fn func(duel *models.Duel) error) error
}

type DeckRepository interface {
	CreateDeck(ctx context.Context, deck *models.Deck) error
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context, ids []string) ([]models.User, error)
	// SearchUsers returns users whose name key starts with namePrefix or whose
	// email starts with emailPrefix.
	SearchUsers(ctx context.Context, namePrefix, emailPrefix string, limit int) ([]models.User, error)
	UpdateName(ctx context.Context, id, name, nameKey string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type FriendRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequest(ctx context.Context, id string) (*models.FriendRequest, error)
	// FindPendingRequest returns ErrNotFound when no pending request from -> to exists.
	FindPendingRequest(ctx context.Context, fromUserID, toUserID string) (*models.FriendRequest, error)
	ListIncomingRequests(ctx context.Context, toUserID string) ([]models.FriendRequest, error)

	// AcceptRequest marks a pending request accepted and stores the friendship
	// in one transaction. It fails with ErrRequestProcessed if the request is
	// no longer pending.
	AcceptRequest(ctx context.Context, requestID string, friendship *models.Friendship) error
	DeclineRequest(ctx context.Context, requestID string) error

	FindFriendship(ctx context.Context, userID, otherID string) (*models.Friendship, error)
	ListFriendships(ctx context.Context, userID string) ([]models.Friendship, error)
	DeleteFriendship(ctx context.Context, userID, otherID string) error
}
