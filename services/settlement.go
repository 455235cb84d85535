package services

import "rcsinavim/models"

// Settle picks the winner of a duel from both participants' results. The
// higher score wins; equal scores go to the faster participant; equal score
// and time is a draw.
func Settle(u1 string, res1 models.DuelResult, u2 string, res2 models.DuelResult) string {
	switch {
	case res1.Score > res2.Score:
		return u1
	case res2.Score > res1.Score:
		return u2
	case res1.TimeSpent < res2.TimeSpent:
		return u1
	case res2.TimeSpent < res1.TimeSpent:
		return u2
	default:
		return models.DrawWinner
	}
}
