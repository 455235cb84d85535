// database/deck_repository.go - Flashcard deck persistence
package database

import (
	"context"

	"rcsinavim/models"
	"rcsinavim/services"
)

func (s *Store) CreateDeck(ctx context.Context, deck *models.Deck) error {
	return s.db.WithContext(ctx).Create(deck).Error
}

func (s *Store) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	if !validID(id) {
		return nil, services.ErrDeckNotFound
	}
	var deck models.Deck
	if err := s.db.WithContext(ctx).First(&deck, "id = ?", id).Error; err != nil {
		return nil, translate(err, services.ErrDeckNotFound)
	}
	return &deck, nil
}
