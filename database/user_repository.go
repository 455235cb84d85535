// database/user_repository.go - User persistence
package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"rcsinavim/models"
	"rcsinavim/services"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrEmailTaken
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, services.ErrUserNotFound
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, services.ErrUserNotFound)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, services.ErrUserNotFound)
	}
	return &user, nil
}

// GetUsers returns the users that exist among ids, in no particular order.
func (s *Store) GetUsers(ctx context.Context, ids []string) ([]models.User, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	err := s.db.WithContext(ctx).Where("id IN ?", valid).Find(&users).Error
	return users, err
}

func (s *Store) SearchUsers(ctx context.Context, namePrefix, emailPrefix string, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where(`name_key LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\'`, prefixPattern(namePrefix), prefixPattern(emailPrefix)).
		Order("name_key ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (s *Store) UpdateName(ctx context.Context, id, name, nameKey string) error {
	if !validID(id) {
		return services.ErrUserNotFound
	}
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "name_key": nameKey})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrUserNotFound
	}
	return nil
}

func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
