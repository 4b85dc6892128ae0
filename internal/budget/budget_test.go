package budget

import (
	"strings"
	"testing"
)

func TestEstimateTokensFromChars(t *testing.T) {
	cases := []struct {
		chars int
		want  int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{4, 1},
		{5, 2},
		{400, 100},
	}
	for _, tc := range cases {
		if got := EstimateTokensFromChars(tc.chars); got != tc.want {
			t.Fatalf("EstimateTokensFromChars(%d) = %d, want %d", tc.chars, got, tc.want)
		}
	}
}

func TestModelMaxTokens(t *testing.T) {
	cases := []struct {
		model string
		want  int
	}{
		{"deepset/roberta-base-squad2", 512},
		{"DEEPSET/ROBERTA-BASE-SQUAD2", 512},
		{"distilbert-base-cased-distilled-squad", 512},
		{"some/unknown-checkpoint", 384},
		{"", 384},
		{"allenai/longformer-base-4096-squad", 4096},
	}
	for _, tc := range cases {
		if got := ModelMaxTokens(tc.model); got != tc.want {
			t.Fatalf("ModelMaxTokens(%q) = %d, want %d", tc.model, got, tc.want)
		}
	}
}

func TestContextChars_ReservesQuestionAndFraming(t *testing.T) {
	q := "What are the paid holidays?"
	got := ContextChars("deepset/roberta-base-squad2", q)
	want := (512 - 32 - EstimateTokens(q)) * 4
	if got != want {
		t.Fatalf("ContextChars = %d, want %d", got, want)
	}
}

func TestContextChars_NeverBelowFloor(t *testing.T) {
	// A question long enough to consume the whole window must still leave
	// a usable excerpt budget.
	q := strings.Repeat("why ", 1000)
	if got := ContextChars("deepset/roberta-base-squad2", q); got != minContextChars {
		t.Fatalf("expected floor %d, got %d", minContextChars, got)
	}
}
