package finder

import (
	"testing"

	"market-scout/models"
)

func threeCandidates() []models.VideoCandidate {
	return []models.VideoCandidate{
		{ID: "1", Title: "First"},
		{ID: "2", Title: "Second"},
		{ID: "3", Title: "Third"},
	}
}

func TestSelectBestParsesIndex(t *testing.T) {
	tests := []struct {
		analysis string
		wantID   string
	}{
		{"Best video: 2 - clear and specific title", "2"},
		{"Best video: [3] - most professional phrasing", "3"},
		{"Some preamble.\nBest video 1 - matches the query directly", "1"},
	}

	for _, tt := range tests {
		sel := SelectBest(threeCandidates(), tt.analysis)
		if sel.Video.ID != tt.wantID {
			t.Errorf("SelectBest(%q) picked %q, want %q", tt.analysis, sel.Video.ID, tt.wantID)
		}
		if sel.Explanation != tt.analysis {
			t.Errorf("SelectBest(%q) should keep the model's analysis as explanation", tt.analysis)
		}
	}
}

func TestSelectBestFallsBackWithoutMarker(t *testing.T) {
	sel := SelectBest(threeCandidates(), "I cannot decide between these options.")
	if sel.Video.ID != "1" {
		t.Errorf("picked %q, want first candidate", sel.Video.ID)
	}
	if sel.Explanation != FallbackExplanation {
		t.Errorf("explanation = %q, want fixed fallback message", sel.Explanation)
	}
}

func TestSelectBestFallsBackOnOutOfRange(t *testing.T) {
	for _, analysis := range []string{"Best video: 0 - hmm", "Best video: 4 - off the end", "Best video: 99"} {
		sel := SelectBest(threeCandidates(), analysis)
		if sel.Video.ID != "1" {
			t.Errorf("SelectBest(%q) picked %q, want first candidate", analysis, sel.Video.ID)
		}
		if sel.Explanation != FallbackExplanation {
			t.Errorf("SelectBest(%q) explanation = %q, want fallback", analysis, sel.Explanation)
		}
	}
}
