package commitment

import (
	"github.com/pkg/errors"

	"github.com/veridoc/go-disclosure/hashing"
)

// DefaultSaltLength is the salt size in bytes. 16 bytes gives the 128 bits
// of entropy commitments rely on to resist dictionary attacks on
// low-entropy values.
const DefaultSaltLength = 16

// GenerateSalt draws length random bytes as lowercase hex. A non-positive
// length falls back to DefaultSaltLength.
func GenerateSalt(length int) (string, error) {
	if length <= 0 {
		length = DefaultSaltLength
	}
	return hashing.RandomHex(length)
}

// SaltsForClaims draws one fresh salt per claim key.
func SaltsForClaims(claims map[string]any) (map[string]string, error) {
	salts := make(map[string]string, len(claims))
	for claimType := range claims {
		salt, err := GenerateSalt(DefaultSaltLength)
		if err != nil {
			return nil, errors.Wrapf(err, "salt for claim %q", claimType)
		}
		salts[claimType] = salt
	}
	return salts, nil
}

// SaltFromSeed derives a reproducible salt from a seed and claim key, for
// deterministic fixtures and recovery flows. Seeded and random salts must
// never be mixed for the same claim across credential versions that are
// meant to be compared.
func SaltFromSeed(seed, claimKey string) string {
	return hashing.SumString("salt:" + seed + ":" + claimKey)
}
