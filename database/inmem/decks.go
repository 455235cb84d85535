package inmem

import (
	"context"

	"github.com/google/uuid"

	"rcsinavim/models"
	"rcsinavim/services"
)

func (s *Store) CreateDeck(_ context.Context, deck *models.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}
	s.decks[deck.ID] = copyDeck(deck)
	return nil
}

func (s *Store) GetDeck(_ context.Context, id string) (*models.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deck, ok := s.decks[id]
	if !ok {
		return nil, services.ErrDeckNotFound
	}
	return copyDeck(deck), nil
}

func copyDeck(d *models.Deck) *models.Deck {
	c := *d
	c.Cards = append([]models.Card(nil), d.Cards...)
	return &c
}
