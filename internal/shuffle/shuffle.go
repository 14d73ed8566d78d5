// Package shuffle provides a deterministic, reproducible permutation of a
// string slice, seeded by the content of the slice itself.
//
// The sticky partition strategy uses this to avoid hot-spotting on
// recently added partitions when handing out the pool of unassigned
// partitions: the same snapshot always shuffles into the same order, so
// unit tests can observe deterministic outcomes, but the order is not
// simply sorted (which would bias placement toward low-cardinality
// partition ids).
package shuffle

import (
	"math/rand/v2"
	"slices"

	"github.com/zeebo/xxh3"
)

// Seed hashes the sorted contents of ids into a 64-bit seed suitable for
// Strings. Sorting first ensures the seed depends only on the set of ids,
// not on caller-supplied ordering.
func Seed(ids []string) uint64 {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	h := xxh3.New()
	for _, id := range sorted {
		_, _ = h.WriteString(id)
		_, _ = h.WriteString("\x00")
	}

	return h.Sum64()
}

// Strings returns a new slice containing a deterministic permutation of
// ids, seeded by Seed(ids). The input slice is never modified.
func Strings(ids []string) []string {
	out := slices.Clone(ids)
	if len(out) < 2 {
		return out
	}

	seed := Seed(ids)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}
