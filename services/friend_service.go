// services/friend_service.go - Friend requests and friendships
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rcsinavim/models"
)

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

type FriendService struct {
	friends FriendRepository
	users   UserRepository
	now     func() time.Time
}

func NewFriendService(friends FriendRepository, users UserRepository) *FriendService {
	return &FriendService{
		friends: friends,
		users:   users,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// PendingRequest is an incoming request with the sender's public profile.
type PendingRequest struct {
	models.FriendRequest
	Sender *models.UserSummary `json:"sender,omitempty"`
}

// SendRequest files a pending request unless the users are already friends
// or a pending request exists in either direction.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID string) error {
	if senderID == receiverID {
		return ErrSelfFriendRequest
	}
	if _, err := s.users.GetUser(ctx, receiverID); err != nil {
		return err
	}

	if _, err := s.friends.FindFriendship(ctx, senderID, receiverID); err == nil {
		return ErrAlreadyFriends
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check friendship: %w", err)
	}

	if _, err := s.friends.FindPendingRequest(ctx, senderID, receiverID); err == nil {
		return ErrRequestPending
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check pending request: %w", err)
	}

	if _, err := s.friends.FindPendingRequest(ctx, receiverID, senderID); err == nil {
		return ErrReverseRequest
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check reverse request: %w", err)
	}

	req := &models.FriendRequest{
		FromUserID: senderID,
		ToUserID:   receiverID,
		Status:     models.FriendRequestPending,
		CreatedAt:  s.now(),
	}
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		return fmt.Errorf("create friend request: %w", err)
	}
	return nil
}

func (s *FriendService) PendingRequests(ctx context.Context, userID string) ([]PendingRequest, error) {
	incoming, err := s.friends.ListIncomingRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	senderIDs := make([]string, 0, len(incoming))
	for _, r := range incoming {
		senderIDs = append(senderIDs, r.FromUserID)
	}
	senders, err := s.summaries(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	out := make([]PendingRequest, 0, len(incoming))
	for _, r := range incoming {
		pr := PendingRequest{FriendRequest: r}
		if sender, ok := senders[r.FromUserID]; ok {
			pr.Sender = &sender
		}
		out = append(out, pr)
	}
	return out, nil
}

// Respond accepts or declines a pending request addressed to userID.
func (s *FriendService) Respond(ctx context.Context, requestID, userID, action string) error {
	if action != ActionAccept && action != ActionDecline {
		return fmt.Errorf("%w: action must be %q or %q", ErrValidation, ActionAccept, ActionDecline)
	}

	req, err := s.friends.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToUserID != userID {
		return fmt.Errorf("%w: request is addressed to another user", ErrForbidden)
	}
	if req.Status != models.FriendRequestPending {
		return ErrRequestProcessed
	}

	if action == ActionDecline {
		return s.friends.DeclineRequest(ctx, requestID)
	}

	friendship := &models.Friendship{
		UserAID:   req.FromUserID,
		UserBID:   req.ToUserID,
		CreatedAt: s.now(),
	}
	if err := s.friends.AcceptRequest(ctx, requestID, friendship); err != nil {
		return err
	}
	log.Printf("Friendship %s created between %s and %s", friendship.ID, req.FromUserID, req.ToUserID)
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]models.UserSummary, error) {
	friendships, err := s.friends.ListFriendships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(userID))
	}
	byID, err := s.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Friends whose account no longer exists are skipped.
	friends := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			friends = append(friends, u)
		}
	}
	return friends, nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return s.friends.DeleteFriendship(ctx, userID, friendID)
}

func (s *FriendService) summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup users: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out, nil
}
