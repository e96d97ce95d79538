package chat

import "testing"

func TestNewEstimator(t *testing.T) {
	e, err := NewEstimator("gpt-4")
	if err != nil {
		t.Fatal(err)
	}
	if e == nil {
		t.Fatal("expected non-nil estimator")
	}
}

func TestEstimatorCount(t *testing.T) {
	e, err := NewEstimator("gpt-4")
	if err != nil {
		t.Fatal(err)
	}

	if got := e.Count(""); got != 0 {
		t.Errorf("expected 0 tokens for empty string, got %d", got)
	}

	short := e.Count("hello")
	if short < 1 {
		t.Errorf("expected at least 1 token, got %d", short)
	}
	long := e.Count("hello hello hello hello hello hello hello hello")
	if long <= short {
		t.Errorf("expected longer text to count more tokens: %d <= %d", long, short)
	}
}

func TestNewEstimatorUnknownModelFallsBack(t *testing.T) {
	e, err := NewEstimator("claude-opus-4-5-20251101")
	if err != nil {
		t.Fatalf("expected cl100k_base fallback, got error: %v", err)
	}
	if got := e.Count("hello world"); got < 1 {
		t.Errorf("expected fallback tokenizer to count tokens, got %d", got)
	}
}
