// Package loyalty holds the stamp-card arithmetic: every StampsPerReward
// stamps earn one free service.
package loyalty

import "github.com/BruksfildServices01/carwash-scheduler/internal/httperr"

const StampsPerReward = 6

type Card struct {
	Stamps    int `json:"stamps"`
	Rewards   int `json:"rewards"`
	Progress  int `json:"progress"`
	Remaining int `json:"remaining"`
	PerReward int `json:"per_reward"`
}

// Remaining is how many stamps are still needed for the next reward. A card
// that has just completed a reward shows 0 rather than a full new round.
func Remaining(stamps int) int {
	mod := stamps % StampsPerReward
	if mod == 0 && stamps > 0 {
		return 0
	}
	return StampsPerReward - mod
}

func Rewards(stamps int) int {
	return stamps / StampsPerReward
}

func Progress(stamps int) int {
	return stamps % StampsPerReward
}

func CardFor(stamps int) Card {
	return Card{
		Stamps:    stamps,
		Rewards:   Rewards(stamps),
		Progress:  Progress(stamps),
		Remaining: Remaining(stamps),
		PerReward: StampsPerReward,
	}
}

// Apply adds delta (which may be negative) and refuses to go below zero.
func Apply(stamps, delta int) (int, error) {
	next := stamps + delta
	if next < 0 {
		return stamps, httperr.ErrBusiness("invalid_stamps")
	}
	return next, nil
}
