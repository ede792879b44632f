// Package catalog orders and groups song lists for display.
package catalog

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownPolicy is returned for sort policy names outside the known set.
	ErrUnknownPolicy = errors.New("unknown sort policy")
	// ErrUnknownGroupKey is returned for group key names outside the known set.
	ErrUnknownGroupKey = errors.New("unknown group key")
)

// Policy selects how songs are ordered
type Policy string

const (
	PolicyAlphabetical  Policy = "alphabetical"   // Title ascending, case-insensitive
	PolicyChronological Policy = "chronological"  // Published date descending
	PolicyByPlayCount   Policy = "by_play_count"  // Play count descending, then title
	PolicyByName        Policy = "by_name"        // Normalized title ascending
	PolicyByGap         Policy = "by_gap"         // Days since last played descending, never played last
	PolicyByAttribution Policy = "by_attribution" // Attribution label, then title
)

var policies = []Policy{
	PolicyAlphabetical,
	PolicyChronological,
	PolicyByPlayCount,
	PolicyByName,
	PolicyByGap,
	PolicyByAttribution,
}

// Policies lists every supported sort policy
func Policies() []Policy {
	out := make([]Policy, len(policies))
	copy(out, policies)
	return out
}

// ParsePolicy maps a policy name onto a Policy
func ParsePolicy(raw string) (Policy, error) {
	name := Policy(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range policies {
		if p == name {
			return p, nil
		}
	}
	return "", ErrUnknownPolicy
}

// NeedsMetrics reports whether ordering depends on play statistics
func (p Policy) NeedsMetrics() bool {
	return p == PolicyByPlayCount || p == PolicyByGap
}

// GroupKey selects how songs are bucketed
type GroupKey string

const (
	GroupFirstLetter GroupKey = "first_letter"
	GroupMonth       GroupKey = "month"
	GroupAttribution GroupKey = "attribution"
)

// ParseGroupKey maps a group key name onto a GroupKey
func ParseGroupKey(raw string) (GroupKey, error) {
	switch key := GroupKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case GroupFirstLetter, GroupMonth, GroupAttribution:
		return key, nil
	default:
		return "", ErrUnknownGroupKey
	}
}

// Policy returns the ordering a key's input must have for grouping to be
// meaningful.
func (k GroupKey) Policy() Policy {
	switch k {
	case GroupMonth:
		return PolicyChronological
	case GroupAttribution:
		return PolicyByAttribution
	default:
		return PolicyAlphabetical
	}
}
