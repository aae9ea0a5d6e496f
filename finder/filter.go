package finder

import (
	"market-scout/models"
	"market-scout/utils"
)

// Bounds is the inclusive duration window applied to search results, plus a
// cap on how many candidates survive per query.
type Bounds struct {
	MinSeconds int
	MaxSeconds int
	MaxKept    int
}

// FilterByDuration retains only candidates whose parsed duration lies within
// the bounds, preserving API result order and capping the survivors. A
// candidate whose duration string cannot be parsed is skipped and logged; a
// single malformed entry never aborts the batch. Re-filtering an already
// filtered list with the same bounds yields the same list.
func FilterByDuration(candidates []models.VideoCandidate, b Bounds, logger *utils.Logger) []models.VideoCandidate {
	kept := make([]models.VideoCandidate, 0, len(candidates))

	for _, c := range candidates {
		secs := c.DurationSeconds
		if secs == 0 {
			parsed, err := ParseDuration(c.Duration)
			if err != nil {
				logger.Warn("Skipping %q: %v", c.Title, err)
				continue
			}
			secs = parsed
		}

		if secs < b.MinSeconds || secs > b.MaxSeconds {
			continue
		}

		c.DurationSeconds = secs
		kept = append(kept, c)

		if b.MaxKept > 0 && len(kept) >= b.MaxKept {
			break
		}
	}

	return kept
}
