package finder

import (
	"regexp"
	"strconv"

	"market-scout/models"
)

// bestVideoPattern matches "Best video:" followed by a bracketed or bare
// integer anywhere in the ranking response.
var bestVideoPattern = regexp.MustCompile(`Best video:?\s*\[?(\d+)\]?`)

// FallbackExplanation replaces the model's analysis when its response could
// not be parsed or named an out-of-range index.
const FallbackExplanation = "Could not parse ranking analysis. Defaulting to first result."

// SelectBest extracts the chosen candidate from the ranking response. When
// the response has no parsable "Best video:" index, or the index falls
// outside [1, len(candidates)], the first candidate is selected with the
// fixed fallback explanation. The pipeline never fails solely because the
// ranking text was unparsable.
func SelectBest(candidates []models.VideoCandidate, analysis string) models.Selection {
	if len(candidates) == 0 {
		return models.Selection{}
	}

	if m := bestVideoPattern.FindStringSubmatch(analysis); m != nil {
		idx, err := strconv.Atoi(m[1])
		if err == nil && idx >= 1 && idx <= len(candidates) {
			return models.Selection{Video: candidates[idx-1], Explanation: analysis}
		}
	}

	return models.Selection{Video: candidates[0], Explanation: FallbackExplanation}
}
