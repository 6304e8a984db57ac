// Package commitment binds a claim type, its canonical value form, and a
// secret salt into a BLAKE3 commitment, and verifies revealed values
// against commitments in constant time.
package commitment

import (
	"crypto/subtle"

	"github.com/pkg/errors"

	"github.com/veridoc/go-disclosure/canonical"
	"github.com/veridoc/go-disclosure/hashing"
)

// Commitment is the issuer-side record for one claim. The commitment hash
// is H(claimType || ":" || serialize(value) || ":" || salt).
type Commitment struct {
	ClaimType  string `json:"claimType"`
	Commitment string `json:"commitment"`
	Salt       string `json:"salt"`
}

// Serializer renders a claim value into the canonical text committed to.
type Serializer func(v any) (string, error)

// Builder creates and verifies commitments with a fixed hasher and
// serializer. The zero-config builder from NewBuilder uses BLAKE3 and
// canonical JSON.
type Builder struct {
	hasher    hashing.Hasher
	serialize Serializer
}

// Option configures a Builder.
type Option func(*Builder)

// WithHasher replaces the default BLAKE3 hasher.
func WithHasher(h hashing.Hasher) Option {
	return func(b *Builder) {
		b.hasher = h
	}
}

// WithSerializer replaces the canonical value serializer. Issuer and
// verifier must use the same one.
func WithSerializer(s Serializer) Option {
	return func(b *Builder) {
		b.serialize = s
	}
}

// NewBuilder returns a Builder with the given options applied.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		hasher:    hashing.Default(),
		serialize: canonical.Serialize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// New commits to a single claim. An empty salt means a fresh random one is
// drawn.
func (b *Builder) New(claimType string, value any, salt string) (Commitment, error) {
	if salt == "" {
		var err error
		salt, err = GenerateSalt(DefaultSaltLength)
		if err != nil {
			return Commitment{}, errors.Wrapf(err, "salt for claim %q", claimType)
		}
	}

	digest, err := b.Digest(claimType, value, salt)
	if err != nil {
		return Commitment{}, err
	}

	return Commitment{ClaimType: claimType, Commitment: digest, Salt: salt}, nil
}

// NewBatch commits to every claim in the map, reusing supplied salts when
// present and drawing fresh ones otherwise.
func (b *Builder) NewBatch(claims map[string]any, salts map[string]string) (map[string]Commitment, error) {
	out := make(map[string]Commitment, len(claims))
	for claimType, value := range claims {
		c, err := b.New(claimType, value, salts[claimType])
		if err != nil {
			return nil, err
		}
		out[claimType] = c
	}
	return out, nil
}

// Digest computes the commitment hash for a claim without drawing a salt.
func (b *Builder) Digest(claimType string, value any, salt string) (string, error) {
	text, err := b.serialize(value)
	if err != nil {
		return "", errors.Wrapf(err, "serialize claim %q", claimType)
	}
	return b.hasher.Sum([]byte(claimType + ":" + text + ":" + salt)), nil
}

// Verify recomputes the commitment for the revealed value and salt and
// compares it with expected in constant time. It never returns an error:
// values that cannot be serialized simply fail verification.
func (b *Builder) Verify(claimType string, value any, salt, expected string) bool {
	digest, err := b.Digest(claimType, value, salt)
	if err != nil {
		return false
	}
	return Equal(digest, expected)
}

// Equal compares two hex digests without a timing side channel. Mismatched
// lengths are rejected up front; equal lengths are compared byte-wise with
// no data-dependent early exit.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

var defaultBuilder = NewBuilder()

// New commits to a claim with the default builder.
func New(claimType string, value any, salt string) (Commitment, error) {
	return defaultBuilder.New(claimType, value, salt)
}

// NewBatch commits to a claim map with the default builder.
func NewBatch(claims map[string]any, salts map[string]string) (map[string]Commitment, error) {
	return defaultBuilder.NewBatch(claims, salts)
}

// Verify checks a revealed claim with the default builder.
func Verify(claimType string, value any, salt, expected string) bool {
	return defaultBuilder.Verify(claimType, value, salt, expected)
}
