// database/friend_repository.go - Friend requests and friendships persistence
package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rcsinavim/models"
	"rcsinavim/services"
)

const pairQuery = "(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)"

func (s *Store) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *Store) GetRequest(ctx context.Context, id string) (*models.FriendRequest, error) {
	if !validID(id) {
		return nil, services.ErrRequestNotFound
	}
	var req models.FriendRequest
	if err := s.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err, services.ErrRequestNotFound)
	}
	return &req, nil
}

func (s *Store) FindPendingRequest(ctx context.Context, fromUserID, toUserID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, models.FriendRequestPending).
		First(&req).Error
	if err != nil {
		return nil, translate(err, services.ErrRequestNotFound)
	}
	return &req, nil
}

func (s *Store) ListIncomingRequests(ctx context.Context, toUserID string) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", toUserID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (s *Store) AcceptRequest(ctx context.Context, requestID string, friendship *models.Friendship) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setRequestStatus(tx, requestID, models.FriendRequestAccepted); err != nil {
			return err
		}
		err := tx.Create(friendship).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.ErrAlreadyFriends
		}
		return err
	})
}

func (s *Store) DeclineRequest(ctx context.Context, requestID string) error {
	return setRequestStatus(s.db.WithContext(ctx), requestID, models.FriendRequestDeclined)
}

// setRequestStatus moves a pending request to status. A request that is no
// longer pending is left untouched.
func setRequestStatus(db *gorm.DB, requestID string, status models.FriendRequestStatus) error {
	result := db.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", requestID, models.FriendRequestPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrRequestProcessed
	}
	return nil
}

func (s *Store) FindFriendship(ctx context.Context, userID, otherID string) (*models.Friendship, error) {
	var f models.Friendship
	if err := s.db.WithContext(ctx).Where(pairQuery, userID, otherID, otherID, userID).First(&f).Error; err != nil {
		return nil, translate(err, services.ErrFriendNotFound)
	}
	return &f, nil
}

func (s *Store) ListFriendships(ctx context.Context, userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	return friendships, err
}

func (s *Store) DeleteFriendship(ctx context.Context, userID, otherID string) error {
	result := s.db.WithContext(ctx).Where(pairQuery, userID, otherID, otherID, userID).Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrFriendNotFound
	}
	return nil
}
