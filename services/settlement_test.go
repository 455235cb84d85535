package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rcsinavim/models"
	"rcsinavim/services"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name string
		res1 models.DuelResult
		res2 models.DuelResult
		want string
	}{
		{
			name: "equal score goes to the faster participant",
			res1: models.DuelResult{Score: 80, TimeSpent: 120},
			res2: models.DuelResult{Score: 80, TimeSpent: 90},
			want: "u2",
		},
		{
			name: "higher score wins regardless of time",
			res1: models.DuelResult{Score: 90, TimeSpent: 500},
			res2: models.DuelResult{Score: 70, TimeSpent: 10},
			want: "u1",
		},
		{
			name: "opponent with higher score wins",
			res1: models.DuelResult{Score: 10, TimeSpent: 1},
			res2: models.DuelResult{Score: 11, TimeSpent: 99},
			want: "u2",
		},
		{
			name: "equal score, challenger faster",
			res1: models.DuelResult{Score: 50, TimeSpent: 30.5},
			res2: models.DuelResult{Score: 50, TimeSpent: 30.75},
			want: "u1",
		},
		{
			name: "exact tie is a draw",
			res1: models.DuelResult{Score: 70, TimeSpent: 100},
			res2: models.DuelResult{Score: 70, TimeSpent: 100},
			want: models.DrawWinner,
		},
		{
			name: "all zero is a draw",
			want: models.DrawWinner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.Settle("u1", tt.res1, "u2", tt.res2))
		})
	}
}

func TestSettleIsTotal(t *testing.T) {
	values := []int{0, 1, 50, 100}
	times := []float64{0, 0.5, 60, 3600}

	for _, s1 := range values {
		for _, t1 := range times {
			for _, s2 := range values {
				for _, t2 := range times {
					got := services.Settle("u1",
						models.DuelResult{Score: s1, TimeSpent: t1}, "u2",
						models.DuelResult{Score: s2, TimeSpent: t2})
					assert.Contains(t, []string{"u1", "u2", models.DrawWinner}, got)

					// Swapping sides mirrors the outcome.
					mirrored := services.Settle("u2",
						models.DuelResult{Score: s2, TimeSpent: t2}, "u1",
						models.DuelResult{Score: s1, TimeSpent: t1})
					assert.Equal(t, got, mirrored)
				}
			}
		}
	}
}
