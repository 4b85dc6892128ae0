package main

import "testing"

const handbook = "The office is open 9 AM to 5 PM. Employees get 10 paid holidays. Overtime pay is 1.5x regular rate."

func TestAnswer_PicksBestSentence(t *testing.T) {
	got := answer("What are the paid holidays?", handbook)
	if got.Answer != "Employees get 10 paid holidays" {
		t.Fatalf("unexpected answer %q", got.Answer)
	}
	if got.Score <= 0 || got.Score > 1 {
		t.Fatalf("score out of range: %v", got.Score)
	}
	if handbook[got.Start:got.End] != got.Answer {
		t.Fatalf("offsets do not frame the answer: %d..%d", got.Start, got.End)
	}
}

func TestAnswer_NoOverlapMeansImpossible(t *testing.T) {
	got := answer("Who won the world cup?", handbook)
	if got.Answer != "" || got.Score != 0 {
		t.Fatalf("expected impossible-answer response, got %+v", got)
	}
}

func TestAnswer_EmptyInputs(t *testing.T) {
	if got := answer("", handbook); got.Answer != "" {
		t.Fatalf("expected empty answer for empty question, got %+v", got)
	}
	if got := answer("paid holidays", ""); got.Answer != "" {
		t.Fatalf("expected empty answer for empty context, got %+v", got)
	}
}
