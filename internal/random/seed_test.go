package random

import "testing"

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() error = %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() error = %v", err)
	}
	if a == b {
		t.Errorf("NewSeed() returned the same value twice: %d", a)
	}
}
