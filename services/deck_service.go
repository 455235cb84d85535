// services/deck_service.go - Shared flashcard decks
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"rcsinavim/models"
)

type DeckService struct {
	decks     DeckRepository
	validator *Validator
}

func NewDeckService(decks DeckRepository, validator *Validator) *DeckService {
	return &DeckService{decks: decks, validator: validator}
}

type CreateDeckInput struct {
	CreatorID string        `json:"creator_id" validate:"required"`
	Title     string        `json:"title" validate:"required,max=200"`
	Subject   string        `json:"subject" validate:"required,max=100"`
	Cards     []models.Card `json:"cards" validate:"required,min=1,dive"`
}

// Normalize trims the free-text fields the way they are stored.
func (in CreateDeckInput) Normalize() CreateDeckInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Subject = strings.TrimSpace(in.Subject)
	return in
}

// CreateDeck stores a new public deck and returns its id.
func (s *DeckService) CreateDeck(ctx context.Context, in CreateDeckInput) (string, error) {
	in = in.Normalize()
	if err := s.validator.Struct(in); err != nil {
		return "", err
	}

	deck := &models.Deck{
		CreatorID: in.CreatorID,
		Title:     in.Title,
		Slug:      slug.MakeLang(in.Title, "tr"),
		Subject:   in.Subject,
		Cards:     in.Cards,
		IsPublic:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.decks.CreateDeck(ctx, deck); err != nil {
		return "", fmt.Errorf("create deck: %w", err)
	}

	log.Printf("Deck %s (%q, %d cards) created by %s", deck.ID, deck.Title, len(deck.Cards), deck.CreatorID)
	return deck.ID, nil
}

func (s *DeckService) GetDeck(ctx context.Context, deckID string) (*models.Deck, error) {
	return s.decks.GetDeck(ctx, deckID)
}
