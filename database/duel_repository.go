// database/duel_repository.go - Flashcard duel persistence
package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rcsinavim/models"
	"rcsinavim/services"
)

// Columns written when a result is submitted. Challenger, opponent, deck
// and creation time never change after insert.
var duelUpdateColumns = []string{"challenger_result", "opponent_result", "status", "winner_id", "completed_at"}

func (s *Store) CreateDuel(ctx context.Context, duel *models.Duel) error {
	return s.db.WithContext(ctx).Create(duel).Error
}

func (s *Store) GetDuel(ctx context.Context, id string) (*models.Duel, error) {
	if !validID(id) {
		return nil, services.ErrDuelNotFound
	}
	var duel models.Duel
	if err := s.db.WithContext(ctx).First(&duel, "id = ?", id).Error; err != nil {
		return nil, translate(err, services.ErrDuelNotFound)
	}
	return &duel, nil
}

func (s *Store) ListDuelsByChallenger(ctx context.Context, userID string) ([]models.Duel, error) {
	var duels []models.Duel
	err := s.db.WithContext(ctx).
		Where("challenger_id = ?", userID).
		Order("created_at DESC").
		Find(&duels).Error
	return duels, err
}

func (s *Store) ListDuelsByOpponent(ctx context.Context, userID string) ([]models.Duel, error) {
	var duels []models.Duel
	err := s.db.WithContext(ctx).
		Where("opponent_id = ?", userID).
		Order("created_at DESC").
		Find(&duels).Error
	return duels, err
}

// UpdateDuel locks the duel row for the length of the transaction so that
// concurrent submissions for the same duel are applied one after another,
// each seeing the slot written by the previous one.
func (s *Store) UpdateDuel(ctx context.Context, id string, fn func(duel *models.Duel) error) error {
	if !validID(id) {
		return services.ErrDuelNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var duel models.Duel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&duel, "id = ?", id).Error; err != nil {
			return translate(err, services.ErrDuelNotFound)
		}

		if err := fn(&duel); err != nil {
			return err
		}

		return tx.Model(&duel).Select(duelUpdateColumns).Updates(&duel).Error
	})
}
