package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts an ISO-8601 duration as returned by contentDetails.duration
// (PT1H2M3S, P1DT2H, P0D) into seconds.
func ParseDuration(value string) (int64, error) {
	m := isoDurationPattern.FindStringSubmatch(value)
	if m == nil || value == "P" || value == "PT" {
		return 0, fmt.Errorf("parse duration %q: unsupported format", value)
	}
	multipliers := []int64{7 * 24 * 3600, 24 * 3600, 3600, 60, 1}
	var total int64
	for i, mult := range multipliers {
		part := m[i+1]
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", value, err)
		}
		total += n * mult
	}
	return total, nil
}
