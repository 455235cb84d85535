package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"rcsinavim/models"
	"rcsinavim/services"
)

func (s *Store) CreateDuel(_ context.Context, duel *models.Duel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if duel.ID == "" {
		duel.ID = uuid.NewString()
	}
	s.duels[duel.ID] = copyDuel(duel)
	return nil
}

func (s *Store) GetDuel(_ context.Context, id string) (*models.Duel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	duel, ok := s.duels[id]
	if !ok {
		return nil, services.ErrDuelNotFound
	}
	return copyDuel(duel), nil
}

func (s *Store) ListDuelsByChallenger(_ context.Context, userID string) ([]models.Duel, error) {
	return s.listDuels(func(d *models.Duel) bool { return d.ChallengerID == userID }), nil
}

func (s *Store) ListDuelsByOpponent(_ context.Context, userID string) ([]models.Duel, error) {
	return s.listDuels(func(d *models.Duel) bool { return d.OpponentID == userID }), nil
}

// UpdateDuel runs fn on a copy under the write lock and stores the copy only
// if fn succeeds.
func (s *Store) UpdateDuel(_ context.Context, id string, fn func(duel *models.Duel) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.duels[id]
	if !ok {
		return services.ErrDuelNotFound
	}

	next := copyDuel(current)
	if err := fn(next); err != nil {
		return err
	}

	current.ChallengerResult = next.ChallengerResult
	current.OpponentResult = next.OpponentResult
	current.Status = next.Status
	current.WinnerID = next.WinnerID
	current.CompletedAt = next.CompletedAt
	return nil
}

func (s *Store) listDuels(match func(*models.Duel) bool) []models.Duel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Duel, 0)
	for _, d := range s.duels {
		if match(d) {
			out = append(out, *copyDuel(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func copyDuel(d *models.Duel) *models.Duel {
	c := *d
	if d.ChallengerResult != nil {
		r := *d.ChallengerResult
		c.ChallengerResult = &r
	}
	if d.OpponentResult != nil {
		r := *d.OpponentResult
		c.OpponentResult = &r
	}
	if d.WinnerID != nil {
		w := *d.WinnerID
		c.WinnerID = &w
	}
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
