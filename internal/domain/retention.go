package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RetentionPolicy is an age threshold in days from a fixed set.
type RetentionPolicy int

// RetentionPolicies lists the selectable thresholds.
var RetentionPolicies = []RetentionPolicy{1, 3, 7, 14, 30}

// DefaultRetention is used when no policy has been chosen.
const DefaultRetention RetentionPolicy = 7

// MaxAge returns the age beyond which an entry is pruned.
func (p RetentionPolicy) MaxAge() time.Duration {
	return time.Duration(p) * 24 * time.Hour
}

// Valid reports whether p is one of RetentionPolicies.
func (p RetentionPolicy) Valid() bool {
	for _, v := range RetentionPolicies {
		if v == p {
			return true
		}
	}
	return false
}

// String returns a human-readable representation of the policy.
func (p RetentionPolicy) String() string {
	if p == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", int(p))
}

// ParseRetentionPolicy accepts "7", "7d", "7 days" or "1 day".
func ParseRetentionPolicy(s string) (RetentionPolicy, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range []string{"days", "day", "d"} {
		if strings.HasSuffix(v, suffix) {
			v = strings.TrimSpace(strings.TrimSuffix(v, suffix))
			break
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRetention, s)
	}
	p := RetentionPolicy(n)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRetention, n)
	}
	return p, nil
}
