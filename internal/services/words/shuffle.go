package words

// Deterministic shuffling for reproducible word selection. The same seed key
// always yields the same permutation, independent of the store, so daily
// determinism is verifiable as a pure function.

// stringSeed hashes a seed key into a 32-bit state with the classic
// (hash << 5) - hash + char rolling hash, wrapping at 32 bits.
func stringSeed(value string) uint32 {
	var hash int32
	for _, r := range value {
		hash = hash<<5 - hash + int32(r)
	}
	return uint32(hash)
}

// mulberry32 returns a deterministic stream of floats in [0, 1)
func mulberry32(seed uint32) func() float64 {
	state := seed
	return func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296
	}
}

// ShuffleDeterministic returns a new slice holding a seeded Fisher-Yates
// permutation of items. An empty seed key falls back to a fixed seed rather
// than failing.
func ShuffleDeterministic(items []string, seedKey string) []string {
	if seedKey == "" {
		seedKey = "majnu"
	}
	random := mulberry32(stringSeed(seedKey))

	shuffled := make([]string, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(random() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
