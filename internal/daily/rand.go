package daily

// Rand is a Mulberry32 generator. The daily puzzle files are produced by the
// same algorithm in the generation pipeline, so the bit pattern must match
// other implementations exactly; do not swap this for math/rand.
type Rand struct {
	state uint32
}

// NewRand seeds a generator. The same seed always replays the same stream.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / (1 << 32)
}

// IntN returns a value in [min, max], inclusive of both bounds.
func (r *Rand) IntN(min, max int) int {
	return int(r.Float64()*float64(max-min+1)) + min
}

// Shuffle permutes items in place with a Fisher-Yates walk from the last
// index down, consuming one stream value per swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i >= 1; i-- {
		j := int(r.Float64() * float64(i+1))
		swap(i, j)
	}
}

// Pick returns the first n elements of a shuffled copy of items. The input
// is left untouched. n larger than the input returns the whole permutation.
func Pick[T any](r *Rand, items []T, n int) []T {
	out := make([]T, len(items))
	copy(out, items)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}
