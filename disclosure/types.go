package disclosure

import (
	"time"

	"github.com/veridoc/go-disclosure/merkle"
)

// CommittedClaim is the per-claim entry of a credential: the commitment
// hash and the salt needed to reopen it.
type CommittedClaim struct {
	Commitment string `json:"commitment"`
	Salt       string `json:"salt"`
}

// Credential packages the issuer-committed claim set: commitments, the
// merkle root, and the serialized tree the holder later derives proofs
// from. It is created once at issuance and never mutated. The embedded
// tree's leaf order is authoritative; its claimType index is rebuilt on
// deserialization.
type Credential struct {
	CredentialID string                    `json:"credentialId"`
	IssuedAt     time.Time                 `json:"issuedAt"`
	Issuer       string                    `json:"issuer,omitempty"`
	Subject      string                    `json:"subject,omitempty"`
	Commitments  map[string]CommittedClaim `json:"commitments"`
	MerkleRoot   string                    `json:"merkleRoot"`
	MerkleTree   *merkle.Tree              `json:"merkleTree"`
}

// DisclosedClaim is one revealed claim: the raw value and the salt that
// opens its commitment.
type DisclosedClaim struct {
	Value any    `json:"value"`
	Salt  string `json:"salt"`
}

// Presentation reveals a subset of a credential's claims together with the
// merkle proofs tying each one to the credential root. Presentations are
// per-disclosure artifacts and are not persisted by this module.
type Presentation struct {
	PresentationID string                    `json:"presentationId"`
	CredentialID   string                    `json:"credentialId"`
	Issuer         string                    `json:"issuer,omitempty"`
	Subject        string                    `json:"subject,omitempty"`
	MerkleRoot     string                    `json:"merkleRoot"`
	Disclosed      map[string]DisclosedClaim `json:"disclosed"`
	Proofs         map[string]merkle.Proof   `json:"proofs"`
	Nonce          string                    `json:"nonce,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

// VerifiedClaim reports the outcome for one disclosed claim.
type VerifiedClaim struct {
	Value    any  `json:"value"`
	Verified bool `json:"verified"`
}

// VerificationResult is the structured outcome of presentation
// verification. Valid is the conjunction of every per-claim result.
type VerificationResult struct {
	Valid  bool                     `json:"valid"`
	Claims map[string]VerifiedClaim `json:"claims"`
	Errors []string                 `json:"errors"`
}
