package finder

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts an ISO-8601 video duration of the form reported by
// the platform ("PT1H2M3S", any subset of components) into total seconds.
// A duration with no recognizable component yields zero. A non-numeric
// component is an error; callers skip that record rather than abort the batch.
func ParseDuration(raw string) (int, error) {
	if len(raw) < 2 {
		return 0, fmt.Errorf("duration %q: missing PT prefix", raw)
	}

	rest := raw[2:]
	seconds := 0

	for _, comp := range []struct {
		marker     string
		multiplier int
	}{
		{"H", 3600},
		{"M", 60},
		{"S", 1},
	} {
		idx := strings.Index(rest, comp.marker)
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return 0, fmt.Errorf("duration %q: bad %s component: %w", raw, comp.marker, err)
		}
		seconds += n * comp.multiplier
		rest = rest[idx+1:]
	}

	return seconds, nil
}
