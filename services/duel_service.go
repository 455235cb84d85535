// services/duel_service.go - Flashcard duel lifecycle
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"rcsinavim/models"
)

const (
	unknownDeckTitle = "Bilinmeyen Deste"
	unknownUserName  = "Bilinmeyen"
)

type DuelService struct {
	duels     DuelRepository
	decks     DeckRepository
	users     UserRepository
	validator *Validator
	now       func() time.Time
}

func NewDuelService(duels DuelRepository, decks DeckRepository, users UserRepository, validator *Validator) *DuelService {
	return &DuelService{
		duels:     duels,
		decks:     decks,
		users:     users,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ResultInput is the client-supplied part of a duel submission.
type ResultInput struct {
	Score        int     `json:"score" validate:"gte=0"`
	CorrectCount int     `json:"correct_count" validate:"gte=0"`
	TotalCount   int     `json:"total_count" validate:"gt=0"`
	TimeSpent    float64 `json:"time_spent" validate:"gte=0"`
}

// DuelSummary is a duel enriched for the listing views. DeckTitle and
// OpponentName are empty when the lookup found nothing.
type DuelSummary struct {
	models.DuelView
	DeckTitle    string `json:"deck_title,omitempty"`
	OpponentName string `json:"opponent_name,omitempty"`
}

// CreateDuel opens a pending duel with both result slots unset. The deck is
// not checked here; a dangling deck id surfaces when the deck is fetched.
func (s *DuelService) CreateDuel(ctx context.Context, challengerID, opponentID, deckID string) (string, error) {
	challengerID = strings.TrimSpace(challengerID)
	opponentID = strings.TrimSpace(opponentID)
	deckID = strings.TrimSpace(deckID)

	if challengerID == "" || opponentID == "" || deckID == "" {
		return "", fmt.Errorf("%w: challenger_id, opponent_id and deck_id are required", ErrValidation)
	}
	if challengerID == opponentID {
		return "", ErrSelfDuel
	}

	duel := &models.Duel{
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		DeckID:       deckID,
		Status:       models.DuelStatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.duels.CreateDuel(ctx, duel); err != nil {
		return "", fmt.Errorf("create duel: %w", err)
	}

	log.Printf("Duel %s created: %s vs %s on deck %s", duel.ID, challengerID, opponentID, deckID)
	return duel.ID, nil
}

// SubmitResult stores userID's result and settles the duel once both
// participants have submitted. A participant may overwrite their own result
// while the duel is pending; a completed duel rejects every submission.
func (s *DuelService) SubmitResult(ctx context.Context, duelID, userID string, in ResultInput) error {
	if err := s.validator.Struct(in); err != nil {
		return err
	}
	if in.CorrectCount > in.TotalCount {
		return fmt.Errorf("%w: correct_count cannot exceed total_count", ErrValidation)
	}

	var settled *models.Duel
	err := s.duels.UpdateDuel(ctx, duelID, func(duel *models.Duel) error {
		if !duel.IsParticipant(userID) {
			return ErrNotParticipant
		}
		if duel.Status == models.DuelStatusCompleted {
			return ErrDuelCompleted
		}

		now := s.now()
		duel.SetResult(userID, &models.DuelResult{
			Score:        in.Score,
			CorrectCount: in.CorrectCount,
			TotalCount:   in.TotalCount,
			TimeSpent:    in.TimeSpent,
			SubmittedAt:  now,
		})

		if duel.BothSubmitted() {
			winner := Settle(duel.ChallengerID, *duel.ChallengerResult, duel.OpponentID, *duel.OpponentResult)
			duel.Status = models.DuelStatusCompleted
			duel.WinnerID = &winner
			duel.CompletedAt = &now
			settled = duel
		}
		return nil
	})
	if err != nil {
		return err
	}

	if settled != nil {
		log.Printf("Duel %s completed: winner=%s", settled.ID, *settled.WinnerID)
	}
	return nil
}

func (s *DuelService) GetDuel(ctx context.Context, duelID string) (*models.Duel, error) {
	return s.duels.GetDuel(ctx, duelID)
}

// GetUserDuels lists every duel userID takes part in, newest first. Deck
// titles and opponent names are filled in when they can be resolved.
func (s *DuelService) GetUserDuels(ctx context.Context, userID string) ([]DuelSummary, error) {
	asChallenger, err := s.duels.ListDuelsByChallenger(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list challenger duels: %w", err)
	}
	asOpponent, err := s.duels.ListDuelsByOpponent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list opponent duels: %w", err)
	}

	duels := append(asChallenger, asOpponent...)

	otherIDs := make([]string, 0, len(duels))
	for _, d := range duels {
		otherIDs = append(otherIDs, otherParticipant(d, userID))
	}
	names, err := s.displayNames(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	deckTitles := make(map[string]string)
	summaries := make([]DuelSummary, 0, len(duels))
	for _, d := range duels {
		title, ok := deckTitles[d.DeckID]
		if !ok {
			title, err = s.deckTitle(ctx, d.DeckID)
			if err != nil {
				return nil, err
			}
			deckTitles[d.DeckID] = title
		}

		summaries = append(summaries, DuelSummary{
			DuelView:     d.View(),
			DeckTitle:    title,
			OpponentName: names[otherParticipant(d, userID)],
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID > summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (s *DuelService) deckTitle(ctx context.Context, deckID string) (string, error) {
	deck, err := s.decks.GetDeck(ctx, deckID)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup deck %s: %w", deckID, err)
	}
	if deck.Title == "" {
		return unknownDeckTitle, nil
	}
	return deck.Title, nil
}

// displayNames resolves user ids to names. Unknown ids are left out.
func (s *DuelService) displayNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	users, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup opponents: %w", err)
	}
	for _, u := range users {
		if u.Name == "" {
			names[u.ID] = unknownUserName
			continue
		}
		names[u.ID] = u.Name
	}
	return names, nil
}

func otherParticipant(d models.Duel, userID string) string {
	if d.ChallengerID == userID {
		return d.OpponentID
	}
	return d.ChallengerID
}
