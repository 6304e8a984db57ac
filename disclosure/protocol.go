// Package disclosure orchestrates the selective disclosure flow: an issuer
// commits a claim set into a credential, a holder reveals a chosen subset
// as a presentation, and a verifier checks the revealed values against the
// credential root without ever seeing the rest.
package disclosure

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/veridoc/go-disclosure/canonical"
	"github.com/veridoc/go-disclosure/commitment"
	"github.com/veridoc/go-disclosure/hashing"
	"github.com/veridoc/go-disclosure/merkle"
)

// Validator checks a claim map against a schema before issuance.
type Validator interface {
	ValidateClaims(claims map[string]any, schema []byte) error
}

// Protocol ties the commitment builder and merkle tree together under one
// hasher and serializer. The zero-config protocol from New uses BLAKE3 and
// canonical JSON. A Protocol holds no mutable state and is safe for
// concurrent use.
type Protocol struct {
	hasher    hashing.Hasher
	serialize commitment.Serializer
	validator Validator
	schema    []byte
}

// Option configures a Protocol.
type Option func(*Protocol)

// WithHasher replaces the default BLAKE3 hasher on both the commitment and
// tree sides.
func WithHasher(h hashing.Hasher) Option {
	return func(p *Protocol) {
		p.hasher = h
	}
}

// WithSerializer replaces the canonical claim value serializer. Issuer and
// verifier must configure the same one.
func WithSerializer(s commitment.Serializer) Option {
	return func(p *Protocol) {
		p.serialize = s
	}
}

// WithValidator sets a claims validator run before issuance.
func WithValidator(v Validator) Option {
	return func(p *Protocol) {
		p.validator = v
	}
}

// WithClaimsSchema sets the schema the validator checks claims against.
func WithClaimsSchema(schema []byte) Option {
	return func(p *Protocol) {
		p.schema = schema
	}
}

// New returns a Protocol with the given options applied.
func New(opts ...Option) *Protocol {
	p := &Protocol{
		hasher:    hashing.Default(),
		serialize: canonical.Serialize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Protocol) builder() *commitment.Builder {
	return commitment.NewBuilder(
		commitment.WithHasher(p.hasher),
		commitment.WithSerializer(p.serialize),
	)
}

// CredentialOptions override issuance defaults. A nil value uses a
// generated credential ID and leaves issuer and subject empty. Salts, when
// supplied, are reused per claim type instead of drawing fresh ones.
type CredentialOptions struct {
	CredentialID string
	Issuer       string
	Subject      string
	Salts        map[string]string
}

// CreateCredential commits every claim, builds the merkle tree over the
// sorted commitments, and packages the result. Claims with identical
// values and salts produce an identical root regardless of input order.
func (p *Protocol) CreateCredential(claims map[string]any, opts *CredentialOptions) (*Credential, error) {
	if len(claims) == 0 {
		return nil, errors.New("cannot issue a credential with no claims")
	}
	if opts == nil {
		opts = &CredentialOptions{}
	}

	if p.validator != nil && p.schema != nil {
		if err := p.validator.ValidateClaims(claims, p.schema); err != nil {
			return nil, errors.Wrap(err, "validate claims")
		}
	}

	commitments, err := p.builder().NewBatch(claims, opts.Salts)
	if err != nil {
		return nil, err
	}

	tree, err := merkle.FromCommitments(commitments, merkle.WithHasher(p.hasher))
	if err != nil {
		return nil, err
	}
	root, err := tree.Root()
	if err != nil {
		return nil, err
	}

	credentialID := opts.CredentialID
	if credentialID == "" {
		credentialID = uuid.NewString()
	}

	committed := make(map[string]CommittedClaim, len(commitments))
	for claimType, c := range commitments {
		committed[claimType] = CommittedClaim{Commitment: c.Commitment, Salt: c.Salt}
	}

	return &Credential{
		CredentialID: credentialID,
		IssuedAt:     time.Now().UTC(),
		Issuer:       opts.Issuer,
		Subject:      opts.Subject,
		Commitments:  committed,
		MerkleRoot:   root,
		MerkleTree:   tree,
	}, nil
}

// CreatePresentation reveals the requested claim types with their salts and
// merkle proofs. Requesting a claim absent from originalClaims or from the
// credential aborts the whole operation; a partial presentation is never
// returned.
func (p *Protocol) CreatePresentation(cred *Credential, revealed []string, originalClaims map[string]any) (*Presentation, error) {
	if cred == nil {
		return nil, errors.New("credential is nil")
	}
	if cred.MerkleTree == nil {
		return nil, errors.New("credential has no merkle tree")
	}

	pres := &Presentation{
		PresentationID: uuid.NewString(),
		CredentialID:   cred.CredentialID,
		Issuer:         cred.Issuer,
		Subject:        cred.Subject,
		MerkleRoot:     cred.MerkleRoot,
		Disclosed:      make(map[string]DisclosedClaim, len(revealed)),
		Proofs:         make(map[string]merkle.Proof, len(revealed)),
		CreatedAt:      time.Now().UTC(),
	}

	for _, claimType := range revealed {
		value, ok := originalClaims[claimType]
		if !ok {
			return nil, errors.Errorf("claim %q not found in original claims", claimType)
		}
		committed, ok := cred.Commitments[claimType]
		if !ok {
			return nil, errors.Errorf("claim %q has no commitment in credential", claimType)
		}

		proof, err := cred.MerkleTree.GenerateProof(claimType)
		if err != nil {
			return nil, errors.Wrapf(err, "proof for claim %q", claimType)
		}

		pres.Disclosed[claimType] = DisclosedClaim{Value: value, Salt: committed.Salt}
		pres.Proofs[claimType] = proof
	}

	return pres, nil
}

// VerifyPresentation recomputes every disclosed claim's commitment and leaf
// hash from the revealed value and salt and replays its proof against the
// presentation root. Presentations are untrusted input, so failures are
// reported per claim and the call never panics or returns an error.
func (p *Protocol) VerifyPresentation(pres *Presentation) *VerificationResult {
	result := &VerificationResult{
		Claims: make(map[string]VerifiedClaim),
		Errors: []string{},
	}

	if pres == nil {
		result.Errors = append(result.Errors, "presentation is nil")
		return result
	}
	if len(pres.Disclosed) == 0 {
		result.Errors = append(result.Errors, "presentation discloses no claims")
		return result
	}

	builder := p.builder()
	valid := true
	for claimType, disclosed := range pres.Disclosed {
		verified := false

		proof, hasProof := pres.Proofs[claimType]
		if !hasProof {
			result.Errors = append(result.Errors,
				fmt.Sprintf("claim %q has no merkle proof", claimType))
		} else {
			digest, err := builder.Digest(claimType, disclosed.Value, disclosed.Salt)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("claim %q: %v", claimType, err))
			} else {
				leafHash := merkle.LeafHash(p.hasher, digest)
				verified = merkle.VerifyProofWithHasher(p.hasher, leafHash, proof.Proof, pres.MerkleRoot)
				if !verified {
					result.Errors = append(result.Errors,
						fmt.Sprintf("claim %q failed merkle verification", claimType))
				}
			}
		}

		result.Claims[claimType] = VerifiedClaim{Value: disclosed.Value, Verified: verified}
		valid = valid && verified
	}

	result.Valid = valid
	return result
}

// PresentationForRequest validates a relying-party request and creates a
// presentation disclosing exactly the claims it asks for. The request
// nonce is echoed into the presentation so the verifier can bind the
// response to its challenge.
func (p *Protocol) PresentationForRequest(cred *Credential, req *Request, originalClaims map[string]any) (*Presentation, error) {
	if v := ValidateRequest(req); !v.Valid {
		return nil, errors.Errorf("invalid disclosure request: %s", strings.Join(v.Errors, "; "))
	}

	pres, err := p.CreatePresentation(cred, req.RequestedClaims, originalClaims)
	if err != nil {
		return nil, err
	}
	pres.Nonce = req.Nonce
	return pres, nil
}
