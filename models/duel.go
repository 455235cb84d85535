// models/duel.go - Flashcard Duel Data Models
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Duel status constants
type DuelStatus string

const (
	DuelStatusPending   DuelStatus = "pending"
	DuelStatusCompleted DuelStatus = "completed"
)

// DrawWinner is stored as the winner of a duel that ended in an exact tie.
const DrawWinner = "draw"

// DuelResult is one participant's submission for a duel.
type DuelResult struct {
	Score        int       `json:"score"`
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	TimeSpent    float64   `json:"time_spent"` // in seconds
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Duel is a two-player asynchronous challenge over one deck.
// Each participant owns exactly one result slot.
type Duel struct {
	ID               string      `json:"id" gorm:"primaryKey;type:uuid"`
	ChallengerID     string      `json:"challenger_id" gorm:"not null;size:64;index"`
	OpponentID       string      `json:"opponent_id" gorm:"not null;size:64;index"`
	DeckID           string      `json:"deck_id" gorm:"not null;size:64"`
	Status           DuelStatus  `json:"status" gorm:"not null;default:'pending';size:20;index"`
	ChallengerResult *DuelResult `json:"-" gorm:"type:jsonb;serializer:json"`
	OpponentResult   *DuelResult `json:"-" gorm:"type:jsonb;serializer:json"`
	WinnerID         *string     `json:"winner_id,omitempty" gorm:"size:64"`
	CreatedAt        time.Time   `json:"created_at" gorm:"not null;index"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty"`
}

func (Duel) TableName() string {
	return "flashcard_duels"
}

// BeforeCreate assigns a UUID when the caller did not.
func (d *Duel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// IsParticipant reports whether userID is the challenger or the opponent.
func (d *Duel) IsParticipant(userID string) bool {
	return userID != "" && (userID == d.ChallengerID || userID == d.OpponentID)
}

// SetResult writes res into userID's slot. It returns false if userID is not
// a participant.
func (d *Duel) SetResult(userID string, res *DuelResult) bool {
	switch userID {
	case d.ChallengerID:
		d.ChallengerResult = res
	case d.OpponentID:
		d.OpponentResult = res
	default:
		return false
	}
	return true
}

// BothSubmitted reports whether both slots are populated.
func (d *Duel) BothSubmitted() bool {
	return d.ChallengerResult != nil && d.OpponentResult != nil
}

// Results renders the two slots keyed by participant id; unset slots are nil.
func (d *Duel) Results() map[string]*DuelResult {
	return map[string]*DuelResult{
		d.ChallengerID: d.ChallengerResult,
		d.OpponentID:   d.OpponentResult,
	}
}

// DuelView is the JSON shape of a duel, with both result slots rendered as
// one mapping keyed by participant id.
type DuelView struct {
	ID           string                 `json:"id"`
	ChallengerID string                 `json:"challenger_id"`
	OpponentID   string                 `json:"opponent_id"`
	DeckID       string                 `json:"deck_id"`
	Status       DuelStatus             `json:"status"`
	Results      map[string]*DuelResult `json:"results"`
	WinnerID     *string                `json:"winner_id,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
}

func (d Duel) View() DuelView {
	return DuelView{
		ID:           d.ID,
		ChallengerID: d.ChallengerID,
		OpponentID:   d.OpponentID,
		DeckID:       d.DeckID,
		Status:       d.Status,
		Results:      d.Results(),
		WinnerID:     d.WinnerID,
		CreatedAt:    d.CreatedAt,
		CompletedAt:  d.CompletedAt,
	}
}

func (d Duel) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.View())
}
