package game

import "strings"

// BonusPoints maps elapsed answer time to bonus points. The bonus starts
// at 6 and decays by one point every 10 seconds, floored at zero:
// 0-10s earns 6, 10-20s earns 5, ... 50-60s earns 1, beyond 60s earns 0.
func BonusPoints(elapsedSeconds float64) int {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	bonus := 6 - int(elapsedSeconds/10)
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}

// Score returns the points earned for a submission: one base point plus
// the time bonus when correct, nothing otherwise.
func Score(correct bool, bonus int) int {
	if !correct {
		return 0
	}
	return 1 + bonus
}

// answersMatch compares a submitted answer against the correct one,
// ignoring case and surrounding whitespace for both question types.
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}
