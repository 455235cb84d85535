package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"rcsinavim/models"
	"rcsinavim/services"
)

func (s *Store) CreateRequest(_ context.Context, req *models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	c := *req
	s.requests[req.ID] = &c
	return nil
}

func (s *Store) GetRequest(_ context.Context, id string) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, services.ErrRequestNotFound
	}
	c := *req
	return &c, nil
}

func (s *Store) FindPendingRequest(_ context.Context, fromUserID, toUserID string) (*models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.FromUserID == fromUserID && r.ToUserID == toUserID && r.Status == models.FriendRequestPending {
			c := *r
			return &c, nil
		}
	}
	return nil, services.ErrRequestNotFound
}

func (s *Store) ListIncomingRequests(_ context.Context, toUserID string) ([]models.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FriendRequest, 0)
	for _, r := range s.requests {
		if r.ToUserID == toUserID && r.Status == models.FriendRequestPending {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) AcceptRequest(_ context.Context, requestID string, friendship *models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return services.ErrRequestNotFound
	}
	if req.Status != models.FriendRequestPending {
		return services.ErrRequestProcessed
	}
	if s.findFriendship(friendship.UserAID, friendship.UserBID) != nil {
		return services.ErrAlreadyFriends
	}

	if friendship.ID == "" {
		friendship.ID = uuid.NewString()
	}
	req.Status = models.FriendRequestAccepted
	c := *friendship
	s.friendships[friendship.ID] = &c
	return nil
}

func (s *Store) DeclineRequest(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return services.ErrRequestNotFound
	}
	if req.Status != models.FriendRequestPending {
		return services.ErrRequestProcessed
	}
	req.Status = models.FriendRequestDeclined
	return nil
}

func (s *Store) FindFriendship(_ context.Context, userID, otherID string) (*models.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := s.findFriendship(userID, otherID)
	if f == nil {
		return nil, services.ErrFriendNotFound
	}
	c := *f
	return &c, nil
}

func (s *Store) ListFriendships(_ context.Context, userID string) ([]models.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Friendship, 0)
	for _, f := range s.friendships {
		if f.Involves(userID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteFriendship(_ context.Context, userID, otherID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.findFriendship(userID, otherID)
	if f == nil {
		return services.ErrFriendNotFound
	}
	delete(s.friendships, f.ID)
	return nil
}

// findFriendship expects the caller to hold the lock.
func (s *Store) findFriendship(userID, otherID string) *models.Friendship {
	for _, f := range s.friendships {
		if f.Involves(userID) && f.Other(userID) == otherID {
			return f
		}
	}
	return nil
}
