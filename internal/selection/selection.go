// Package selection picks random items while avoiding what was shown recently.
package selection

import "math/rand"

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](items []T, rnd *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Pick returns up to n items from all, preferring those not in recent. When
// fewer than n fresh candidates exist, the rest is filled from the full set.
// The input slices are not modified.
func Pick[T comparable](all, recent []T, n int, rnd *rand.Rand) []T {
	if n <= 0 || len(all) == 0 {
		return []T{}
	}

	excluded := make(map[T]struct{}, len(recent))
	for _, r := range recent {
		excluded[r] = struct{}{}
	}

	candidates := make([]T, 0, len(all))
	for _, item := range all {
		if _, ok := excluded[item]; !ok {
			candidates = append(candidates, item)
		}
	}

	Shuffle(candidates, rnd)
	if len(candidates) >= n {
		return candidates[:n]
	}

	picked := make(map[T]struct{}, len(candidates))
	for _, c := range candidates {
		picked[c] = struct{}{}
	}
	fill := make([]T, 0, len(all))
	for _, item := range all {
		if _, ok := picked[item]; !ok {
			fill = append(fill, item)
		}
	}
	Shuffle(fill, rnd)

	out := candidates
	for _, item := range fill {
		if len(out) == n {
			break
		}
		out = append(out, item)
	}
	return out
}
