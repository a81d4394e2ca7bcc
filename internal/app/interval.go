package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bft-labs/savekeeper/internal/domain"
)

var intervalPattern = regexp.MustCompile(`(?i)^(\d+\.?\d*)\s*(?:minutes?)?$`)

// ParseInterval reads an autosave interval in minutes from free text such as
// "2", "2.5" or "3 minutes".
func ParseInterval(text string) (float64, error) {
	t := strings.TrimSpace(text)
	m := intervalPattern.FindStringSubmatch(t)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidInterval, text)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || !validMinutes(v) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidInterval, text)
	}
	return v, nil
}

// FormatMinutes renders an interval without trailing zeros.
func FormatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
