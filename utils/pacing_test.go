package utils

import (
	"testing"
	"time"
)

func TestSeenSetNoDuplicates(t *testing.T) {
	s := NewSeenSet()

	if !s.Add("Plush Bear|https://example.com/p/1") {
		t.Error("first Add should return true")
	}
	if s.Add("Plush Bear|https://example.com/p/1") {
		t.Error("second Add of same key should return false")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
	if !s.Contains("Plush Bear|https://example.com/p/1") {
		t.Error("Contains should report the added key")
	}
}

func TestPacerEnforcesInterval(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)

	start := time.Now()
	p.Wait() // first call is free
	p.Wait()
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("second Wait returned after %v, want >= 50ms", elapsed)
	}
}

func TestPacerFirstCallImmediate(t *testing.T) {
	p := NewPacer(time.Second)

	start := time.Now()
	p.Wait()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait took %v, expected immediate return", elapsed)
	}
}
