package game

import "testing"

func TestBonusPointsBoundaries(t *testing.T) {
	cases := []struct {
		elapsed float64
		want    int
	}{
		{0, 6},
		{5, 6},
		{9.999, 6},
		{10, 5},
		{15, 5},
		{25, 4},
		{35, 3},
		{50, 1},
		{59.999, 1},
		{60, 0},
		{61, 0},
		{600, 0},
		{-1, 6},
	}
	for _, c := range cases {
		if got := BonusPoints(c.elapsed); got != c.want {
			t.Errorf("BonusPoints(%v) = %d, want %d", c.elapsed, got, c.want)
		}
	}
}

func TestScore(t *testing.T) {
	if got := Score(true, 6); got != 7 {
		t.Fatalf("correct with max bonus: got %d, want 7", got)
	}
	if got := Score(true, 0); got != 1 {
		t.Fatalf("correct with no bonus: got %d, want 1", got)
	}
	if got := Score(false, 6); got != 0 {
		t.Fatalf("incorrect answer must earn 0, got %d", got)
	}
}

func TestAnswersMatch(t *testing.T) {
	cases := []struct {
		submitted, correct string
		want               bool
	}{
		{"Paris", "paris", true},
		{"  paris  ", "Paris", true},
		{"4", "4", true},
		{"London", "Paris", false},
		{"", "Paris", false},
	}
	for _, c := range cases {
		if got := answersMatch(c.submitted, c.correct); got != c.want {
			t.Errorf("answersMatch(%q, %q) = %v, want %v", c.submitted, c.correct, got, c.want)
		}
	}
}
