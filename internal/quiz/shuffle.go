package quiz

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of in. The input slice is
// left untouched.
func Shuffle[T any](in []T) []T {
	return ShuffleWith(rand.IntN, in)
}

// ShuffleWith is Shuffle with an injectable source; intn(n) must return a
// value in [0, n).
func ShuffleWith[T any](intn func(n int) int, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to n items drawn uniformly without replacement.
func Sample[T any](in []T, n int) []T {
	shuffled := Shuffle(in)
	if n >= 0 && n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}
