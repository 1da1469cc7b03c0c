package field

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// normalSource draws i.i.d. standard-normal values from a private,
// deterministically seeded stream.
type normalSource struct {
	rng *rand.Rand
}

func newNormalSource(seed int64) *normalSource {
	return &normalSource{rng: rand.New(rand.NewSource(seed))}
}

// Fill overwrites dst with fresh standard-normal draws. The whole array is
// filled from one stream position, so consecutive Fill calls partition a
// single i.i.d. sequence.
func (s *normalSource) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.rng.NormFloat64()
	}
}

// entropySeed derives a seed from the OS entropy source for generators
// constructed without an explicit seed.
func entropySeed() (int64, error) {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("field: failed to read entropy seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}
