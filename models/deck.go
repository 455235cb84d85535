// models/deck.go - Shared Flashcard Decks
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card is a single front/back pair.
type Card struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// Deck is an ordered, subject-tagged set of cards owned by its creator.
// Decks are immutable once created.
type Deck struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatorID string    `json:"creator_id" gorm:"not null;size:64;index"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Slug      string    `json:"slug" gorm:"size:220;index"`
	Subject   string    `json:"subject" gorm:"not null;size:100;index"`
	Cards     []Card    `json:"cards" gorm:"type:jsonb;serializer:json"`
	IsPublic  bool      `json:"is_public" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (Deck) TableName() string {
	return "flashcard_decks"
}

func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
