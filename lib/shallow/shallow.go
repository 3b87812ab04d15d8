// Package shallow provides spread-style map helpers used to combine
// renderer registries and element props.
package shallow

// Merge combines sources into a new map. When a key appears in more than one
// source the value from the later source wins. Nil sources contribute nothing.
//
// The result is always non-nil and never shares storage with any source, so
// mutating it leaves the inputs untouched. Values are copied, not cloned.
func Merge[M ~map[K]V, K comparable, V any](sources ...M) M {
	n := 0
	for _, src := range sources {
		n += len(src)
	}

	out := make(M, n)
	for _, src := range sources {
		for k, v := range src {
			out[k] = v
		}
	}
	return out
}

// Omit returns a copy of source without the given keys.
// A nil source yields an empty, non-nil map.
func Omit[M ~map[K]V, K comparable, V any](source M, keys ...K) M {
	out := make(M, len(source))
	for k, v := range source {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
