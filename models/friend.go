// models/friend.go - Friendships and Friend Requests
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest represents a friend request from one user to another
type FriendRequest struct {
	ID         string              `json:"id" gorm:"primaryKey;type:uuid"`
	FromUserID string              `json:"from_user_id" gorm:"not null;size:64;index"`
	ToUserID   string              `json:"to_user_id" gorm:"not null;size:64;index"`
	Status     FriendRequestStatus `json:"status" gorm:"default:'pending';size:20"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Friendship links two users. One row exists per pair.
type Friendship struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserAID   string    `json:"user_a_id" gorm:"not null;size:64;index"`
	UserBID   string    `json:"user_b_id" gorm:"not null;size:64;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (Friendship) TableName() string {
	return "friendships"
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Other returns the member of the friendship that is not userID.
func (f Friendship) Other(userID string) string {
	if f.UserAID == userID {
		return f.UserBID
	}
	return f.UserAID
}

// Involves reports whether userID is one side of the friendship.
func (f Friendship) Involves(userID string) bool {
	return f.UserAID == userID || f.UserBID == userID
}
