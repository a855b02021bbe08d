// Package client is a Go client for the explorer API. It ships the
// incremental merge used to grow a "load more" result list without
// duplicate rows across successive page fetches.
package client

// MergeAppend appends incoming onto existing, preserving the order of both
// and skipping any element whose key already appears in existing or earlier
// in the same incoming batch. Pages fetched against a shifting backing set
// can overlap; the merge keeps the grown list duplicate-free regardless.
func MergeAppend[T any, K comparable](existing, incoming []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(existing)+len(incoming))
	for _, x := range existing {
		seen[key(x)] = struct{}{}
	}

	out := make([]T, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	for _, x := range incoming {
		k := key(x)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, x)
	}

	return out
}
